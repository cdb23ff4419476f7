package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/config"
	"github.com/feral-file/ff-collection-ledger/internal/deployment"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledgerd"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/messaging"
	"github.com/feral-file/ff-collection-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-collection-ledger/internal/store"
	"github.com/feral-file/ff-collection-ledger/internal/webhook"
)

const usage = `Usage: ledgerctl <command> [flags]

Commands:
  deploy   create a collection from config and write a deployment record
  info     print the supply and royalty summary of a collection
  watch    stream ledger events of a collection from NATS
  forward  post ledger events of a collection to the configured webhook
`

// app holds the dependencies shared by the subcommands
type app struct {
	cfg       *config.LedgerCtlConfig
	clock     adapter.Clock
	json      adapter.JSON
	service   ledgerd.Service
	deployRec deployment.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	configFile := flags.String("config", "", "Path to configuration file")
	envPath := flags.String("env", "config/", "Path to environment files")
	collectionID := flags.String("id", "", "Collection ID (defaults to the latest deployment of the network)")
	network := flags.String("network", "", "Network name of the deployment record (overrides config)")
	_ = flags.Parse(os.Args[2:])

	config.ChdirRepoRoot()
	cfg, err := config.LoadLedgerCtlConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *network != "" {
		cfg.Network = *network
	}

	err = logger.Initialize(logger.Config{
		Debug:       cfg.Debug,
		Level:       cfg.LogLevel,
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Environment,
		Tags: map[string]string{
			"service": "ledgerctl",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledgerctl", zap.Error(err))
	}

	switch command {
	case "deploy":
		err = a.deploy(ctx)
	case "info":
		err = a.info(ctx, *collectionID)
	case "watch":
		err = a.watch(ctx, *collectionID, "", nil)
	case "forward":
		err = a.forward(ctx, *collectionID)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.FatalCtx(ctx, "Command failed", zap.String("command", command), zap.Error(err))
	}
}

func newApp(cfg *config.LedgerCtlConfig) (*app, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	dataStore := store.NewPGStore(db)

	return &app{
		cfg:       cfg,
		clock:     clock,
		json:      jsonAdapter,
		service:   ledgerd.NewService(dataStore, clock),
		deployRec: deployment.NewWriter(cfg.DeploymentsDir, adapter.NewFileSystem(), jsonAdapter),
	}, nil
}

// deploy creates the configured collection and records the deployment
func (a *app) deploy(ctx context.Context) error {
	c := a.cfg.Collection

	admin, err := domain.ParseAddress(c.Admin)
	if err != nil {
		return fmt.Errorf("collection.admin: %w", err)
	}
	receiver, err := domain.ParseAddress(c.RoyaltyReceiver)
	if err != nil {
		return fmt.Errorf("collection.royalty_receiver: %w", err)
	}

	info, err := a.service.CreateCollection(ctx, ledgerd.CreateCollectionInput{
		Name:            c.Name,
		Symbol:          c.Symbol,
		BaseURI:         c.BaseURI,
		ContractURI:     c.ContractURI,
		MaxSupply:       c.MaxSupply,
		MaxBatchSize:    c.MaxBatchSize,
		RoyaltyBps:      c.RoyaltyBps,
		RoyaltyReceiver: receiver,
		Admin:           admin,
	})
	if err != nil {
		return err
	}

	path, latest, err := a.deployRec.Save(&deployment.Record{
		Network:      a.cfg.Network,
		CollectionID: info.ID,
		Admin:        admin,
		Timestamp:    a.clock.Now(),
		Parameters: deployment.Parameters{
			Name:               c.Name,
			Symbol:             c.Symbol,
			BaseURI:            c.BaseURI,
			ContractURI:        c.ContractURI,
			MaxSupply:          c.MaxSupply,
			MaxBatchSize:       c.MaxBatchSize,
			RoyaltyBasisPoints: c.RoyaltyBps,
			RoyaltyReceiver:    receiver,
		},
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Deployment record saved", zap.String("path", path), zap.String("latest", latest))
	printSummary(info)

	return nil
}

// info prints the collection summary
func (a *app) info(ctx context.Context, id string) error {
	id, err := a.resolveID(id)
	if err != nil {
		return err
	}

	info, err := a.service.GetCollection(ctx, id)
	if err != nil {
		return err
	}

	printSummary(info)
	return nil
}

// forward posts ledger events of a collection to the webhook until interrupted
func (a *app) forward(ctx context.Context, id string) error {
	fwd, err := webhook.NewForwarder(webhook.Config{
		URL:        a.cfg.Webhook.URL,
		Secret:     a.cfg.Webhook.Secret,
		Timeout:    a.cfg.Webhook.Timeout,
		MaxElapsed: a.cfg.Webhook.MaxElapsed,
	}, http.DefaultClient, a.clock)
	if err != nil {
		return err
	}

	id, err = a.resolveID(id)
	if err != nil {
		return err
	}

	// one durable consumer per forwarded collection
	return a.watch(ctx, id, "ledger-webhook-"+id, fwd.Handler(ctx))
}

// watch consumes ledger events of a collection until interrupted. An empty consumer
// name is ephemeral; a nil handler prints each event.
func (a *app) watch(ctx context.Context, id string, consumer string, handler messaging.EventHandler) error {
	id, err := a.resolveID(id)
	if err != nil {
		return err
	}

	sub, err := jetstream.NewSubscriber(jetstream.Config{
		URL:            a.cfg.NATS.URL,
		StreamName:     a.cfg.NATS.StreamName,
		SubjectPrefix:  a.cfg.NATS.SubjectPrefix,
		ConsumerName:   consumer,
		MaxReconnects:  a.cfg.NATS.MaxReconnects,
		ReconnectWait:  a.cfg.NATS.ReconnectWait,
		ConnectionName: a.cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), a.json)
	if err != nil {
		return err
	}
	defer sub.Close()

	if handler == nil {
		handler = func(event *domain.LedgerEvent) error {
			data, err := a.json.Marshal(event)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
	}

	return sub.SubscribeEvents(ctx, id, handler)
}

// resolveID falls back to the latest deployment of the configured network
func (a *app) resolveID(id string) (string, error) {
	if id != "" {
		return id, nil
	}

	record, err := a.deployRec.Latest(a.cfg.Network)
	if err != nil {
		return "", fmt.Errorf("no collection id given: %w", err)
	}
	return record.CollectionID, nil
}

func printSummary(info *ledgerd.CollectionInfo) {
	fmt.Println("Collection Summary")
	fmt.Println("------------------------------------------")
	fmt.Printf("ID:               %s\n", info.ID)
	fmt.Printf("Name:             %s (%s)\n", info.Name, info.Symbol)
	fmt.Printf("Admin:            %s\n", info.Admin.Hex())
	fmt.Printf("Base URI:         %s\n", info.BaseURI)
	fmt.Printf("Contract URI:     %s\n", info.ContractURI)
	fmt.Printf("Max Supply:       %d\n", info.MaxSupply)
	fmt.Printf("Max Batch Size:   %d\n", info.MaxBatchSize)
	fmt.Printf("Minted:           %d\n", info.TotalMinted)
	fmt.Printf("Burned:           %d\n", info.TotalBurned)
	fmt.Printf("Total Supply:     %d\n", info.TotalSupply)
	fmt.Printf("Remaining Supply: %d\n", info.RemainingSupply)
	fmt.Printf("Royalty:          %d bps (%d.%02d%%)\n", info.RoyaltyBps, info.RoyaltyBps/100, info.RoyaltyBps%100)
	fmt.Printf("Royalty Receiver: %s\n", info.RoyaltyReceiver.Hex())
}
