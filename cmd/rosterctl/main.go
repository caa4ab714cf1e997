package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"roster-lab/auth"
	"roster-lab/domain"
	"roster-lab/internal"
	"roster-lab/observability"
	"roster-lab/repositories"
	"roster-lab/services"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

const usage = `rosterctl <command> [flags]

Commands:
  seed                         load demo identities, contacts and messages
  load    -self ID | -token T  print the three contact partitions
  toggle  -self ID -target ID  flip a favorite flag
  add     -self ID -target ID  add a contact to the roster
  find    -q TERM              search profiles by display name
  token   -self ID             issue a session token
`

type stack struct {
	config    internal.Config
	db        *badger.DB
	writer    *bluge.Writer
	roster    *repositories.RosterRepository
	messages  *repositories.MessageRepository
	profiles  *repositories.ProfileRepository
	index     *repositories.ProfileIndex
	rosterSvc *services.RosterService
	favorites *services.FavoritesService
}

func main() {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	s, err := openStack(config)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer s.close()

	ctx := context.Background()
	switch os.Args[1] {
	case "seed":
		err = runSeed(s)
	case "load":
		err = runLoad(ctx, s, os.Args[2:])
	case "toggle":
		err = runToggle(ctx, s, os.Args[2:])
	case "add":
		err = runAdd(s, os.Args[2:])
	case "find":
		err = runFind(ctx, s, os.Args[2:])
	case "token":
		err = runToken(s, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func openStack(config internal.Config) (*stack, error) {
	logger := logs.GetLoggerFromString(config.LogLevel)

	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: %w", err)
	}

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bluge: %w", err)
	}

	roster := repositories.NewRosterRepository(db, logger)
	messages := repositories.NewMessageRepository(db, logger)
	profiles := repositories.NewProfileRepository(db, logger)
	index := repositories.NewProfileIndex(writer, logger)

	state := services.NewRosterState()
	monitoring := observability.NewMonitoring(logger)

	return &stack{
		config:    config,
		db:        db,
		writer:    writer,
		roster:    roster,
		messages:  messages,
		profiles:  profiles,
		index:     index,
		rosterSvc: services.NewRosterService(logger, roster, messages, profiles, state, monitoring),
		favorites: services.NewFavoritesService(logger, roster, state, monitoring),
	}, nil
}

func (s *stack) close() {
	_ = s.writer.Close()
	_ = s.db.Close()
}

// identityFlag resolves the viewing identity from -token when present,
// falling back to the raw -self flag for local use.
func identityFlag(self, token string) (domain.Identity, error) {
	if token != "" {
		return auth.CurrentIdentity(token)
	}
	return domain.Identity(self), nil
}

func runSeed(s *stack) error {
	now := time.Now().UTC()
	demoProfiles := []domain.UserProfile{
		{Identity: "alice", DisplayName: "Alice Martin", AvatarRef: "avatars/alice.jpg"},
		{Identity: "bruno", DisplayName: "Bruno Costa", AvatarRef: "avatars/bruno.jpg"},
		{Identity: "clara", DisplayName: "Clara Souza", AvatarRef: "avatars/clara.jpg"},
		{Identity: "diego", DisplayName: "Diego Ferreira", AvatarRef: "avatars/diego.jpg"},
	}
	for _, profile := range demoProfiles {
		if err := s.profiles.Put(profile); err != nil {
			return err
		}
		if err := s.index.Index(profile); err != nil {
			return err
		}
	}

	// alice knows bruno and clara; diego messaged alice without being added.
	if err := s.roster.AddContact("alice", "bruno", now); err != nil {
		return err
	}
	if err := s.roster.AddContact("alice", "clara", now.Add(time.Second)); err != nil {
		return err
	}
	if err := s.roster.AddFavorite("alice", "bruno"); err != nil {
		return err
	}

	senders := []domain.Identity{"clara", "diego"}
	for i, sender := range senders {
		err := s.messages.StoreMessage(domain.Message{
			ID:          uuid.New(),
			SenderID:    sender,
			RecipientID: "alice",
			SentAt:      now.Add(time.Duration(i) * time.Minute),
			PayloadRef:  fmt.Sprintf("payloads/%s-hello", sender),
		})
		if err != nil {
			return err
		}
	}

	fmt.Println("Seeded demo data. Try: rosterctl load -self alice")
	return nil
}

func runLoad(ctx context.Context, s *stack, args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	self := fs.String("self", "", "viewing identity")
	token := fs.String("token", "", "session token")
	_ = fs.Parse(args)

	identity, err := identityFlag(*self, *token)
	if err != nil {
		return err
	}

	view, err := s.rosterSvc.Load(ctx, identity)
	if err != nil {
		return err
	}

	if view.Partial {
		color.Warn.Println("Partial view: the sender index was unreachable, NotAdded may be incomplete")
	}

	printPartition("Added", view.Added, view.FavoriteIDs)
	printPartition("Not added", view.NotAdded, view.FavoriteIDs)
	printPartition("Favorites", view.Favorites, view.FavoriteIDs)
	return nil
}

func printPartition(title string, profiles []domain.UserProfile, favorites domain.FavoriteSet) {
	color.New(color.FgGreen, color.Bold).Printf("\n%s (%d)\n", title, len(profiles))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Identity", "Display Name", "Avatar"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, profile := range profiles {
		star := " "
		if favorites.Has(profile.Identity) {
			star = color.Yellow.Render("★")
		}
		name := profile.DisplayName
		if name == "" {
			name = "(unresolved)"
		}
		table.Append([]string{star, string(profile.Identity), name, profile.AvatarRef})
	}
	table.Render()
}

func runToggle(ctx context.Context, s *stack, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	self := fs.String("self", "", "viewing identity")
	token := fs.String("token", "", "session token")
	target := fs.String("target", "", "contact to toggle")
	_ = fs.Parse(args)

	identity, err := identityFlag(*self, *token)
	if err != nil {
		return err
	}

	// Toggle decisions are made against the loaded in-memory set.
	if _, err := s.rosterSvc.Load(ctx, identity); err != nil {
		return err
	}

	toggleCtx, cancel := context.WithTimeout(ctx, s.config.ToggleTimeout)
	defer cancel()

	favorites, err := s.favorites.Toggle(toggleCtx, identity, domain.Identity(*target))
	if err != nil {
		return err
	}

	if favorites.Has(domain.Identity(*target)) {
		color.Yellow.Printf("★ %s is now a favorite of %s\n", *target, identity)
	} else {
		fmt.Printf("%s is no longer a favorite of %s\n", *target, identity)
	}
	return nil
}

func runAdd(s *stack, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	self := fs.String("self", "", "viewing identity")
	token := fs.String("token", "", "session token")
	target := fs.String("target", "", "contact to add")
	_ = fs.Parse(args)

	identity, err := identityFlag(*self, *token)
	if err != nil {
		return err
	}

	if err := s.roster.AddContact(identity, domain.Identity(*target), time.Now().UTC()); err != nil {
		return err
	}
	fmt.Printf("%s added to the roster of %s\n", *target, identity)
	return nil
}

func runFind(ctx context.Context, s *stack, args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	term := fs.String("q", "", "display name search term")
	_ = fs.Parse(args)

	ids, err := s.index.SearchByName(ctx, *term, s.config.SearchLimit)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No profile matches")
		return nil
	}

	set := make(map[domain.Identity]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	profiles, err := s.profiles.ResolveBatch(set)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if profile, ok := profiles[id]; ok {
			fmt.Printf("%s\t%s\n", profile.Identity, profile.DisplayName)
		}
	}
	return nil
}

func runToken(s *stack, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	self := fs.String("self", "", "identity to issue a token for")
	_ = fs.Parse(args)

	token, err := auth.GenerateToken(domain.Identity(*self), s.config.AuthTokenDuration)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
