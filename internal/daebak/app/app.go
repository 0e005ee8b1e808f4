package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/http"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/http/handler"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	m "github.com/AndreyVLZ/mr-daebak/internal/daebak/app/middle"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/pkg/idempotency"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/backend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/fakebackend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/memory"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/postgres"
	adminSrv "github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/admin"
	assistSrv "github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/history"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/wizard"
	"github.com/redis/go-redis/v9"
)

const (
	AddresDef     string        = "localhost:8081"
	BackendURLDef string        = "http://localhost:8080/api"
	SessionTTLDef time.Duration = 2 * time.Hour
	CookieKey     string        = "daebak_session"

	idempotencyTTL = 10 * time.Minute
)

type Config struct {
	Addr       string
	DBConn     string
	RedisAddr  string
	BackendURL *url.URL
	SessionTTL time.Duration
	Fake       bool
}

type FuncOpt func(*Config) error

func NewConfig(opts ...FuncOpt) (*Config, error) {
	cfg := &Config{
		Addr:       AddresDef,
		SessionTTL: SessionTTLDef,
	}

	for i := range opts {
		if err := opts[i](cfg); err != nil {
			return nil, fmt.Errorf("newConfig: %w", err)
		}
	}

	if cfg.BackendURL == nil && !cfg.Fake {
		return nil, errors.New("newConfig: backend address is required")
	}

	return cfg, nil
}

type api interface {
	Start() error
	Stop(context.Context) error
}

type service interface {
	Start() error
	Stop() error
	Name() string
}

type Services []service

// backendAPI is everything the services need from the Mr. Daeback backend.
type backendAPI interface {
	Name() string
	Dinners(context.Context) ([]catalog.Dinner, error)
	ServingStyles(context.Context) ([]catalog.ServingStyle, error)
	DefaultMenuItems(context.Context, string) ([]catalog.DefaultMenuItem, error)
	MenuItems(context.Context) ([]catalog.MenuItem, error)
	CreateProduct(context.Context, product.CreateRequest) (product.Product, error)
	DeleteProduct(context.Context, string) error
	ProductMenuItems(context.Context, string) ([]product.Line, error)
	AddProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error
	UpdateProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error
	DeleteProductMenuItem(ctx context.Context, productID, menuItemID string) error
	PaymentCards(context.Context) ([]order.PaymentCard, error)
	CreateCart(context.Context, order.CartRequest) (order.Cart, error)
	CheckoutCart(context.Context, string) (order.Order, error)
	MyOrders(context.Context) ([]order.Order, error)
	AdminOrders(context.Context) ([]order.Order, error)
	SearchOrders(ctx context.Context, orderNumber, username string) ([]order.Order, error)
	ApproveOrder(context.Context, string, order.ApproveRequest) error
	UpdateDeliveryStatus(context.Context, string, order.DeliveryStatus) error
	Chat(context.Context, assistant.ChatRequest) (assistant.ChatReply, error)
	VoiceCheckout(context.Context, assistant.CheckoutRequest) (assistant.CheckoutResult, error)
}

type receiptStore interface {
	SaveReceipt(context.Context, order.Receipt) error
	Receipts(context.Context, order.ReceiptFilter) ([]order.Receipt, error)
}

type onceGuard interface {
	Seen(context.Context, string) (bool, error)
	Forget(context.Context, string) error
}

type app struct {
	api api
	Services
	log     *slog.Logger
	cfg     *Config
	backend string
}

func (srvs *Services) add(arrSrvs ...service) { *srvs = append(*srvs, arrSrvs...) }

func New(cfg *Config) *app {
	log := initLog()
	app := &app{log: log, cfg: cfg}

	var backendRepo backendAPI
	if cfg.Fake {
		backendRepo = fakebackend.New()
	} else {
		backendRepo = backend.New(cfg.BackendURL, log)
	}

	app.backend = backendRepo.Name()

	var receipts receiptStore = memory.New()
	if cfg.DBConn != "" {
		pqStore := postgres.New(postgres.Config{ConnDB: cfg.DBConn})
		app.Services.add(pqStore)
		receipts = pqStore
	}

	var once onceGuard = idempotency.NewMemory(idempotencyTTL)
	if cfg.RedisAddr != "" {
		redisStore := idempotency.NewStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), idempotencyTTL)
		app.Services.add(redisStore)
		once = redisStore
	}

	sessions := session.NewStore()
	app.Services.add(session.NewSweeper(sessions, cfg.SessionTTL, log))

	wizardSrv := wizard.NewWizardService(backendRepo, receipts, once, log)
	assistantSrv := assistSrv.NewAssistantService(backendRepo, receipts, once, log)
	historySrv := history.NewHistoryService(backendRepo, receipts)
	adminService := adminSrv.NewAdminService(backendRepo)

	wizardHandler := handler.NewWizardHandler(wizardSrv, log)
	assistantHandler := handler.NewAssistantHandler(assistantSrv, log)
	historyHandler := handler.NewHistoryHandler(historySrv, log)
	adminHandler := handler.NewAdminHandler(adminService, log)

	r := http.NewRouter()

	r.Group("/api", func(r http.Router) {
		r.Use(m.Logger(log))
		r.Use(m.Token(backend.WithToken))
		r.Use(m.Session(handler.GetContextKey(), CookieKey, sessions))

		// order wizard
		r.Group("/order", func(r http.Router) {
			r.Handle("/flow", m.Use(wizardHandler.View(), m.Get()))
			r.Handle("/flow/next", m.Use(wizardHandler.Next(), m.Post()))
			r.Handle("/flow/back", m.Use(wizardHandler.Back(), m.Post()))
			r.Handle("/flow/step", m.Use(wizardHandler.Jump(), m.Post(), m.AppJSON()))
			r.Handle("/flow/reset", m.Use(wizardHandler.Reset(), m.Post()))
			r.Handle("/flow/address", m.Use(wizardHandler.SelectAddress(), m.Post(), m.AppJSON()))
			r.Handle("/flow/dinner", m.Use(wizardHandler.SelectDinner(), m.Post(), m.AppJSON()))
			r.Handle("/flow/style", m.Use(wizardHandler.SelectStyle(), m.Post(), m.AppJSON()))
			r.Handle("/flow/customize", m.Use(wizardHandler.Customize(), m.Get()))
			r.Handle("/flow/quantity", m.Use(wizardHandler.SetQuantity(), m.Post(), m.AppJSON()))
			r.Handle("/flow/memo", m.Use(wizardHandler.SetMemo(), m.Post(), m.AppJSON()))
			r.Handle("/flow/menu-items/{id}", m.Use(wizardHandler.UpdateMenuItem(), m.Post(), m.AppJSON()))
			r.Handle("/flow/extras", m.Use(wizardHandler.AddExtra(), m.Post(), m.AppJSON()))
			r.Handle("/flow/extras/{id}",
				m.Select{
					Patch:  m.Use(wizardHandler.UpdateExtra(), m.AppJSON()),
					Delete: wizardHandler.RemoveExtra(),
				},
			)
			r.Handle("/checkout", m.Use(wizardHandler.Checkout(), m.Post()))

			r.Handle("/catalog/dinners", m.Use(wizardHandler.Dinners(), m.Get()))
			r.Handle("/catalog/styles", m.Use(wizardHandler.Styles(), m.Get()))
		})

		// assistant
		r.Handle("/assistant", m.Use(assistantHandler.View(), m.Get()))
		r.Handle("/assistant/chat", m.Use(assistantHandler.Chat(), m.Post(), m.AppJSON()))
		r.Handle("/assistant/reset", m.Use(assistantHandler.Reset(), m.Post()))

		// history
		r.Handle("/orders", m.Use(historyHandler.Orders(), m.Get()))
		r.Handle("/receipts", m.Use(historyHandler.Receipts(), m.Get()))

		// admin
		r.Group("/admin/orders", func(r http.Router) {
			r.Handle("/", m.Use(adminHandler.Orders(), m.Get()))
			r.Handle("/{id}/approve", m.Use(adminHandler.Approve(), m.Post()))
			r.Handle("/{id}/reject", m.Use(adminHandler.Reject(), m.Post(), m.AppJSON()))
			r.Handle("/{id}/delivery-status", m.Use(adminHandler.DeliveryStatus(), m.Patch(), m.AppJSON()))
		})
	})

	app.api = http.NewServer(http.ServerConfig{Addr: cfg.Addr}, r)

	return app
}

func (app *app) Start() error {
	backendAddr := "fake"
	if app.cfg.BackendURL != nil {
		backendAddr = app.cfg.BackendURL.String()
	}

	app.log.Info("start server",
		"addr", app.cfg.Addr,
		"backend", app.backend,
		"backendURL", backendAddr,
		"dbConn", app.cfg.DBConn != "",
		"redis", app.cfg.RedisAddr,
		"sessionTTL", app.cfg.SessionTTL.String(),
	)

	for i := range app.Services {
		if err := app.Services[i].Start(); err != nil {
			return fmt.Errorf("service [%s] start: %w", app.Services[i].Name(), err)
		}

		app.log.Info("start service", "name", app.Services[i].Name())
	}

	return app.api.Start()
}

func (app *app) Stop(ctx context.Context) error {
	ctxTimeout, stopTimeout := context.WithTimeout(ctx, 5*time.Second)
	defer stopTimeout()

	errs := make([]error, 0, len(app.Services)+1)
	if err := app.api.Stop(ctxTimeout); err != nil {
		errs = append(errs, err)
	}

	for _, srv := range app.Services {
		if err := srv.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("service [%s] err: %w", srv.Name(), err))
			continue
		}

		app.log.Info("stop service", "name", srv.Name())
	}

	return errors.Join(errs...)
}

func initLog() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func SetAddr(addr string) FuncOpt {
	return func(c *Config) error {
		c.Addr = addr
		return nil
	}
}

func SetDBURI(dbConn string) FuncOpt {
	return func(c *Config) error {
		c.DBConn = dbConn
		return nil
	}
}

func SetRedisAddr(addr string) FuncOpt {
	return func(c *Config) error {
		c.RedisAddr = addr
		return nil
	}
}

// SetBackendURL sets the base URL of the backend REST API, e.g.
// http://localhost:8080/api.
func SetBackendURL(raw string) FuncOpt {
	return func(c *Config) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("backend url: %w", err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("backend url [%s]: scheme must be http or https", raw)
		}

		c.BackendURL = u

		return nil
	}
}

func SetSessionTTL(raw string) FuncOpt {
	return func(c *Config) error {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("session ttl: %w", err)
		}

		if ttl <= 0 {
			return fmt.Errorf("session ttl [%s] must be positive", raw)
		}

		c.SessionTTL = ttl

		return nil
	}
}

func SetFake(fake bool) FuncOpt {
	return func(c *Config) error {
		c.Fake = fake
		return nil
	}
}
