package main

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/resourcehub/internal/auth"
	"github.com/dmitrijs2005/resourcehub/internal/bookmarks"
	"github.com/dmitrijs2005/resourcehub/internal/catalog"
	"github.com/dmitrijs2005/resourcehub/internal/cli"
	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/config"
	"github.com/dmitrijs2005/resourcehub/internal/dispatch"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/netx"
	"github.com/dmitrijs2005/resourcehub/internal/objectstore"
	"github.com/dmitrijs2005/resourcehub/internal/pdfx"
	"github.com/dmitrijs2005/resourcehub/internal/redisx"
	"github.com/dmitrijs2005/resourcehub/internal/repositories/repomanager"
	"github.com/dmitrijs2005/resourcehub/internal/services"
	"github.com/dmitrijs2005/resourcehub/internal/thumbnails"
	"github.com/dmitrijs2005/resourcehub/internal/upload"
)

// localUploadDir receives uploads when no S3 endpoint is configured.
const localUploadDir = "uploads"

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	db, manager, err := repomanager.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	resources := services.NewResourceService(db, manager)

	store, err := openObjectStore(ctx, cfg)
	if err != nil {
		return err
	}

	bookmarkStore, handoffs, closeRedis, err := openSessionStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	session := auth.NewSession(cfg.SecretKey)
	overlay := bookmarks.NewOverlay(bookmarkStore, session, common.BookmarkKindResource, logger)

	fetcher := netx.NewClient()
	cache := thumbnails.NewCache(pdfx.NewRenderer(fetcher, 0), logger)
	defer cache.Close()

	view := catalog.NewView(resources, overlay, cache, cfg.PageSize, logger)
	router := cli.NewRouter(os.Stdout)

	app := cli.NewApp(cli.Deps{
		View:       view,
		Bookmarks:  overlay,
		Auth:       session,
		Uploader:   upload.NewTransaction(session, store, resources, logger),
		Dispatcher: dispatch.NewDispatcher(fetcher, pdfx.NewExtractor(), handoffs, router, logger),
		SessionID:  uuid.NewString(),
		In:         os.Stdin,
		Out:        os.Stdout,
		Log:        logger,
	})

	if cfg.AccessToken != "" {
		_ = app.SignInWithToken(ctx, cfg.AccessToken)
	}

	app.Run(ctx)
	return nil
}

func openObjectStore(ctx context.Context, cfg *config.Config) (objectstore.Store, error) {
	if cfg.S3BaseEndpoint == "" {
		local, err := objectstore.NewLocalStore(localUploadDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	s3, err := objectstore.NewS3Store(ctx, objectstore.S3Options{
		RootUser:     cfg.S3RootUser,
		RootPassword: cfg.S3RootPassword,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		PublicURL:    cfg.S3PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}

// openSessionStores picks Redis when an address is configured and the
// in-memory stores otherwise.
func openSessionStores(ctx context.Context, cfg *config.Config, logger logging.Logger) (bookmarks.Store, dispatch.HandoffStore, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info(ctx, "redis not configured, bookmarks and handoffs kept in memory")
		return bookmarks.NewMemoryStore(), dispatch.NewMemoryHandoffStore(), func() {}, nil
	}

	client, err := redisx.Connect(ctx, redisx.DefaultOptions(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() { _ = client.Close() }
	return bookmarks.NewRedisStore(client), dispatch.NewRedisHandoffStore(client, cfg.SessionTTL), closeFn, nil
}
