package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/repo"
	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/email"
	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
	redispkg "github.com/Alijeyrad/interiora_backend/pkg/redis"
	s3pkg "github.com/Alijeyrad/interiora_backend/pkg/s3"
	"github.com/Alijeyrad/interiora_backend/pkg/sms"
	"github.com/Alijeyrad/interiora_backend/pkg/util/codes"
	"github.com/Alijeyrad/interiora_backend/pkg/util/password"
)

// ServiceModule provides the public-facing services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideLeadRepo,
		ProvideContentRepo,
		ProvideReferenceGenerator,
		ProvideLeadNotifier,
		ProvideLeadService,
		ProvideContentService,
	),
)

// AdminModule provides the admin service and its token/session backends.
// It is only installed when authentication is enabled.
var AdminModule = fx.Module("admin",
	fx.Provide(
		ProvidePasetoManager,
		ProvidePasswordHasher,
		ProvideSessionStore,
		ProvideAdminRepo,
		ProvideAdminService,
	),
)

func ProvideLeadRepo(db *sql.DB) *repo.LeadRepo       { return repo.NewLeadRepo(db) }
func ProvideContentRepo(db *sql.DB) *repo.ContentRepo { return repo.NewContentRepo(db) }
func ProvideAdminRepo(db *sql.DB) *repo.AdminRepo     { return repo.NewAdminRepo(db) }

func ProvideReferenceGenerator(cfg *config.Config) lead.ReferenceGenerator {
	return codes.NewGenerator(codes.FromCentralConfig(cfg.Codes))
}

// NotifierDeps are the delivery backends a notifier chain may use. Any of
// them may be nil when its backend is disabled.
type NotifierDeps struct {
	Email  lead.EmailSender
	SMS    lead.TemplateTexter
	Events lead.Publisher
}

// BuildNotifier composes the configured notification channels in order.
func BuildNotifier(cfg *config.Config, deps NotifierDeps) (lead.Notifier, error) {
	n := cfg.Notification

	var channels []lead.Channel
	for _, name := range n.Channels {
		var notifier lead.Notifier
		switch name {
		case "email":
			if deps.Email == nil {
				return nil, fmt.Errorf("notification channel %q requires email.enabled", name)
			}
			notifier = NewLeadEmailNotifier(cfg, deps.Email)
		case "sms":
			if deps.SMS == nil {
				return nil, fmt.Errorf("notification channel %q requires sms.enabled", name)
			}
			smsNotifier, err := lead.NewSMSNotifier(deps.SMS, n.SMSTo, n.DefaultRegion)
			if err != nil {
				return nil, err
			}
			notifier = smsNotifier
		case "events":
			if deps.Events == nil {
				return nil, fmt.Errorf("notification channel %q requires nats.enabled", name)
			}
			notifier = lead.NewEventNotifier(deps.Events)
		case "log":
			notifier = lead.LogNotifier{}
		default:
			return nil, fmt.Errorf("unknown notification channel %q", name)
		}
		channels = append(channels, lead.Channel{Name: name, Notifier: notifier})
	}

	if len(channels) == 0 {
		channels = append(channels, lead.Channel{Name: "log", Notifier: lead.LogNotifier{}})
	}
	return lead.NewMultiNotifier(channels...), nil
}

// NewLeadEmailNotifier builds the studio inbox notifier from config.
func NewLeadEmailNotifier(cfg *config.Config, sender lead.EmailSender) *lead.EmailNotifier {
	var to []string
	for _, addr := range strings.Split(cfg.Notification.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return lead.NewEmailNotifier(sender, lead.EmailNotifierConfig{
		To:            to,
		SubjectPrefix: cfg.Notification.SubjectPrefix,
		StudioName:    cfg.Site.StudioName,
		PhoneRegion:   cfg.Notification.DefaultRegion,
	})
}

type NotifierParams struct {
	fx.In

	Cfg   *config.Config
	Email *email.Client
	SMS   *sms.Client
	NC    *nats.Conn
}

func ProvideLeadNotifier(p NotifierParams) (lead.Notifier, error) {
	var deps NotifierDeps
	if p.Email != nil && p.Email.Enabled() {
		deps.Email = p.Email
	}
	if p.SMS != nil && p.SMS.IsEnabled() {
		deps.SMS = p.SMS
	}
	if p.NC != nil {
		deps.Events = p.NC
	}

	n, err := BuildNotifier(p.Cfg, deps)
	if err != nil {
		return nil, err
	}
	slog.Info("lead notifications configured", "channels", p.Cfg.Notification.Channels, "dispatch", p.Cfg.Notification.Dispatch)
	return n, nil
}

func ProvideLeadService(lc fx.Lifecycle, cfg *config.Config, store *repo.LeadRepo, notifier lead.Notifier, refs lead.ReferenceGenerator) lead.Service {
	svc := lead.New(store, notifier, refs, lead.Options{
		Async:         cfg.Notification.Dispatch == "async",
		NotifyTimeout: time.Duration(cfg.Notification.TimeoutSeconds) * time.Second,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("waiting for in-flight lead notifications")
			return svc.Wait(ctx)
		},
	})
	return svc
}

func ProvideContentService(cfg *config.Config, store *repo.ContentRepo, s3 *s3pkg.Client) content.Service {
	var signer content.URLSigner
	if s3 != nil {
		signer = s3
	}
	return content.New(store, signer, content.Options{
		GalleryLimit:      cfg.Content.GalleryLimit,
		TestimonialsLimit: cfg.Content.TestimonialsLimit,
	})
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}

func ProvidePasswordHasher(cfg *config.Config) (*password.Hasher, error) {
	return password.NewHasher(password.FromCentralConfig(cfg.Password))
}

func ProvideSessionStore(rdb *redis.Client) *redispkg.SessionStore {
	return redispkg.NewSessionStore(rdb)
}

type AdminParams struct {
	fx.In

	Cfg      *config.Config
	Users    *repo.AdminRepo
	Leads    *repo.LeadRepo
	Sessions *redispkg.SessionStore
	Tokens   *pasetotoken.Manager
	Hasher   *password.Hasher
	Authz    authorize.IAuthorization
}

func ProvideAdminService(p AdminParams) admin.Service {
	a := p.Cfg.Authentication
	return admin.New(p.Users, p.Leads, p.Sessions, p.Tokens, p.Hasher, p.Authz, admin.Options{
		MaxFailedLogins: a.MaxFailedLogins,
		LockoutDuration: time.Duration(a.LockoutMinutes) * time.Minute,
	})
}
