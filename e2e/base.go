package e2e

import (
	"fmt"
	"log/slog"
	"roster-lab/observability"
	"roster-lab/repositories"
	"roster-lab/services"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

// BaseSuite runs scenarios against a complete in-process engine: real
// BadgerDB, real bluge index, real services. No mocks past this point.
type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// Step prints a colorized header so scenario steps stand out in logs.
func (s *BaseSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Stack is one fully wired engine on throwaway storage.
type Stack struct {
	Roster    *repositories.RosterRepository
	Messages  *repositories.MessageRepository
	Profiles  *repositories.ProfileRepository
	Index     *repositories.ProfileIndex
	RosterSvc *services.RosterService
	Favorites *services.FavoritesService
	State     *services.RosterState
}

// NewStack opens the full engine on temp dirs, torn down with the test.
func (s *BaseSuite) NewStack(t *testing.T) *Stack {
	t.Helper()
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	s.Require().NoError(err)
	t.Cleanup(func() { _ = writer.Close() })

	roster := repositories.NewRosterRepository(db, log)
	messages := repositories.NewMessageRepository(db, log)
	profiles := repositories.NewProfileRepository(db, log)
	index := repositories.NewProfileIndex(writer, log)

	state := services.NewRosterState()
	monitoring := observability.NewMonitoring(log)

	return &Stack{
		Roster:    roster,
		Messages:  messages,
		Profiles:  profiles,
		Index:     index,
		RosterSvc: services.NewRosterService(log, roster, messages, profiles, state, monitoring),
		Favorites: services.NewFavoritesService(log, roster, state, monitoring),
		State:     state,
	}
}
