package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
)

func TestRosterStoreSeedState(t *testing.T) {
	convey.Convey("Given a freshly seeded store", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore(ctx)

		convey.Convey("Then it should hold the nine seeded activities", func() {
			convey.So(store.Count(ctx), convey.ShouldEqual, 9)

			listing := store.List(ctx)
			convey.So(len(listing), convey.ShouldEqual, 9)
			for _, a := range listing {
				convey.So(a.Description, convey.ShouldNotBeEmpty)
				convey.So(a.Schedule, convey.ShouldNotBeEmpty)
				convey.So(a.MaxParticipants, convey.ShouldBeGreaterThan, 0)
				convey.So(a.Participants, convey.ShouldNotBeNil)
			}
		})

		convey.Convey("Then Chess Club should start with two participants", func() {
			chess := store.List(ctx)["Chess Club"]
			convey.So(chess.Participants, convey.ShouldResemble,
				[]string{"michael@mergington.edu", "daniel@mergington.edu"})
		})

		convey.Convey("Then mutating a listed roster should not leak into the store", func() {
			listing := store.List(ctx)
			chess := listing["Chess Club"]
			chess.Participants[0] = "tampered@mergington.edu"

			again := store.List(ctx)["Chess Club"]
			convey.So(again.Participants[0], convey.ShouldEqual, "michael@mergington.edu")
		})
	})
}

func TestRosterStoreSignup(t *testing.T) {
	convey.Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore(ctx)

		convey.Convey("When signing up a new student", func() {
			err := store.Signup(ctx, "Chess Club", "newstudent@mergington.edu")

			convey.Convey("Then the roster should grow and keep insertion order", func() {
				convey.So(err, convey.ShouldBeNil)
				chess := store.List(ctx)["Chess Club"]
				convey.So(len(chess.Participants), convey.ShouldEqual, 3)
				convey.So(chess.Participants[2], convey.ShouldEqual, "newstudent@mergington.edu")
			})
		})

		convey.Convey("When signing up an existing participant", func() {
			err := store.Signup(ctx, "Chess Club", "michael@mergington.edu")

			convey.Convey("Then it should report the conflict and not mutate", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrAlreadySignedUp)
				convey.So(len(store.List(ctx)["Chess Club"].Participants), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When signing up for an unknown activity", func() {
			err := store.Signup(ctx, "Nonexistent Activity", "x@y.edu")

			convey.Convey("Then it should report not found", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrNotFound)
			})
		})

		convey.Convey("When one student joins several activities", func() {
			email := "versatile@mergington.edu"
			convey.So(store.Signup(ctx, "Chess Club", email), convey.ShouldBeNil)
			convey.So(store.Signup(ctx, "Programming Class", email), convey.ShouldBeNil)

			convey.Convey("Then both rosters should contain the student", func() {
				listing := store.List(ctx)
				convey.So(listing["Chess Club"].HasParticipant(email), convey.ShouldBeTrue)
				convey.So(listing["Programming Class"].HasParticipant(email), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When signing up beyond the stated capacity", func() {
			// max_participants is informational; the store never enforces it.
			for i := 0; i < 20; i++ {
				email := fmt.Sprintf("student%d@mergington.edu", i)
				convey.So(store.Signup(ctx, "Chess Club", email), convey.ShouldBeNil)
			}

			convey.Convey("Then every signup should have succeeded", func() {
				chess := store.List(ctx)["Chess Club"]
				convey.So(len(chess.Participants), convey.ShouldEqual, 22)
				convey.So(chess.MaxParticipants, convey.ShouldEqual, 12)
			})
		})
	})
}

func TestRosterStoreUnregister(t *testing.T) {
	convey.Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore(ctx)

		convey.Convey("When unregistering an existing participant", func() {
			err := store.Unregister(ctx, "Chess Club", "michael@mergington.edu")

			convey.Convey("Then the roster should shrink", func() {
				convey.So(err, convey.ShouldBeNil)
				chess := store.List(ctx)["Chess Club"]
				convey.So(chess.Participants, convey.ShouldResemble, []string{"daniel@mergington.edu"})
			})

			convey.Convey("And the student should be able to sign up again", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.Signup(ctx, "Chess Club", "michael@mergington.edu"), convey.ShouldBeNil)
				convey.So(store.List(ctx)["Chess Club"].HasParticipant("michael@mergington.edu"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When unregistering a student who never signed up", func() {
			err := store.Unregister(ctx, "Chess Club", "notstudent@mergington.edu")

			convey.Convey("Then it should report the missing registration", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrNotSignedUp)
			})
		})

		convey.Convey("When unregistering from an unknown activity", func() {
			err := store.Unregister(ctx, "Nonexistent Activity", "x@y.edu")

			convey.Convey("Then it should report not found", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrNotFound)
			})
		})

		convey.Convey("When a signup is followed by an unregister", func() {
			before := store.List(ctx)["Drama Club"].Participants
			convey.So(store.Signup(ctx, "Drama Club", "temp@mergington.edu"), convey.ShouldBeNil)
			convey.So(store.Unregister(ctx, "Drama Club", "temp@mergington.edu"), convey.ShouldBeNil)

			convey.Convey("Then the roster should match the original state", func() {
				convey.So(store.List(ctx)["Drama Club"].Participants, convey.ShouldResemble, before)
			})
		})
	})
}

func TestRosterStoreResetAndSeedOption(t *testing.T) {
	convey.Convey("Given a store with a custom seed", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore(ctx, repository.WithSeed(func() map[string]repository.Activity {
			return map[string]model.Activity{
				"Robotics Club": {
					Description:     "Build and program robots",
					Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
					MaxParticipants: 10,
					Participants:    []string{"ada@mergington.edu", "ada@mergington.edu"},
				},
			}
		}))

		convey.Convey("Then the custom catalog should replace the default", func() {
			convey.So(store.Count(ctx), convey.ShouldEqual, 1)
		})

		convey.Convey("Then duplicate seed entries should collapse to one membership", func() {
			robotics := store.List(ctx)["Robotics Club"]
			convey.So(robotics.Participants, convey.ShouldResemble, []string{"ada@mergington.edu"})
		})

		convey.Convey("When mutations are followed by Reset", func() {
			convey.So(store.Signup(ctx, "Robotics Club", "grace@mergington.edu"), convey.ShouldBeNil)
			convey.So(store.ParticipantCount(ctx), convey.ShouldEqual, 2)

			store.Reset(ctx)

			convey.Convey("Then the directory should return to seed state", func() {
				convey.So(store.ParticipantCount(ctx), convey.ShouldEqual, 1)
				convey.So(store.List(ctx)["Robotics Club"].HasParticipant("grace@mergington.edu"), convey.ShouldBeFalse)
			})
		})
	})
}

func TestRosterStoreConcurrentMutations(t *testing.T) {
	convey.Convey("Given concurrent signups against one activity", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore(ctx)

		const writers = 50
		var wg sync.WaitGroup
		wg.Add(writers)
		for i := 0; i < writers; i++ {
			go func(i int) {
				defer wg.Done()
				_ = store.Signup(ctx, "Gym Class", fmt.Sprintf("rush%d@mergington.edu", i))
			}(i)
		}
		wg.Wait()

		convey.Convey("Then no update should be lost", func() {
			gym := store.List(ctx)["Gym Class"]
			convey.So(len(gym.Participants), convey.ShouldEqual, writers+2)
		})
	})
}
