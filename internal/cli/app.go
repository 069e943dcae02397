package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"offstash/internal/codec"
	"offstash/internal/common"
	"offstash/internal/config"
	"offstash/internal/cryptox"
	"offstash/internal/logging"
	"offstash/internal/netwatch"
	"offstash/internal/services"
	"offstash/internal/storage"
	"offstash/internal/syncer"
	"offstash/internal/transport"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	attachments services.AttachmentService
	queue       *syncer.Queue
	observer    *netwatch.Observer
	prober      netwatch.Prober
	log         logging.Logger
	reader      *bufio.Reader
	Mode        Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, repos, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	cdc, err := codec.ByName(c.Codec)
	if err != nil {
		return nil, err
	}

	var sealKey []byte
	if c.EncryptAtRest {
		pass, err := GetPassword(os.Stdout)
		if err != nil {
			return nil, err
		}
		salt, err := loadOrCreateSalt(c.DatabaseDSN + ".salt")
		if err != nil {
			return nil, err
		}
		sealKey = cryptox.DeriveKey(pass, salt)
	}

	notifier := services.NewNotifier()

	as := services.NewAttachmentService(repos.Attachments, cdc,
		services.AttachmentConfig{CompressOnWrite: c.CompressOnWrite, SealKey: sealKey},
		notifier, log)

	tr := transport.NewHTTPTransport(c.SyncEndpoint,
		transport.WithTimeout(c.SendTimeout),
		transport.WithRetries(c.SendRetries, c.SendBackoff))

	observer := netwatch.New(false)
	queue := syncer.NewQueue(repos.SyncQueue, tr, observer, notifier, log)

	app := &App{
		config:      c,
		db:          db,
		attachments: as,
		queue:       queue,
		observer:    observer,
		prober:      transport.NewHTTPProber(c.SyncEndpoint),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		Mode:        ModeOffline,
	}

	observer.Subscribe(netwatch.EventOnline, func() { app.setMode(ModeOnline) })
	observer.Subscribe(netwatch.EventOffline, func() { app.setMode(ModeOffline) })

	return app, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) getStatus() string {
	return "(" + string(a.Mode) + ")"
}

// Run starts the reachability watcher and the REPL, and blocks until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.observer.Watch(ctx, a.prober, a.config.OnlineCheckInterval)
		return nil
	})

	g.Go(func() error {
		scanner := bufio.NewScanner(os.Stdin)
		runREPL(ctx, a, a.getStatus, scanner)
		cancel()
		return nil
	})

	_ = g.Wait()
}

// loadOrCreateSalt reads a key-derivation salt from path, creating it
// with fresh random bytes on first use.
func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	salt = common.GenerateRandByteArray(16)
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, err
	}
	return salt, nil
}
