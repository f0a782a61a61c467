package config

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InstanceId is set once by CreateUniqueInstance and tagged on request logs.
var InstanceId string

// Config holds the environment driven settings of the donation services.
type Config struct {
	AppEnv      string `env:"APP_ENV,default=dev"`
	ServicePort string `env:"SERVICE_PORT,default=5000"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogToFile   bool   `env:"LOG_TO_FILE,default=false"`

	DatabaseDriver string `env:"DATABASE_DRIVER,default=mongo"`
	MongoURI       string `env:"MONGODB_URI"`
	PostgresURL    string `env:"POSTGRES_URL"`

	SessionSecret       string `env:"SESSION_SECRET"`
	SessionTTLMinutes   int    `env:"SESSION_TTL_MINUTES,default=60"`
	SessionCookieSecure bool   `env:"SESSION_COOKIE_SECURE,default=false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	RazorpayKeyID          string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret      string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL        string `env:"RAZORPAY_BASE_URL,default=https://api.razorpay.com/v1"`
	RazorpayTimeoutSeconds int    `env:"RAZORPAY_TIMEOUT_SECONDS,default=15"`
	PaymentCurrency        string `env:"PAYMENT_CURRENCY,default=INR"`

	NatsURL     string `env:"NATS_URL"`
	NatsToken   string `env:"NATS_TOKEN"`
	NatsSubject string `env:"NATS_SUBJECT,default=donation.service"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs  string `env:"TELEGRAM_CHAT_IDS"`

	RateLimit   int    `env:"RATE_LIMIT,default=100"`
	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:5000"`
	BcryptCost  int    `env:"BCRYPT_COST,default=10"`
}

const defaultSessionSecret = "changeme"

func LoadEnv(service string) {
	log.Infof("%s service configuration and env variables loading started ...", service)
	err := godotenv.Load("./.env")
	if err != nil {
		// containers usually inject the environment directly
		log.Warnf("no .env file loaded: %s", err)
		return
	}

	log.Info(".env file loaded.")
}

// Load maps the process environment onto a Config.
func Load() (*Config, error) {
	c := &Config{}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return nil, errors.Wrap(err, "failed to map env variables to Config")
	}

	if c.SessionSecret == "" {
		log.Warn("SESSION_SECRET not set, falling back to an insecure default")
		c.SessionSecret = defaultSessionSecret
	}

	switch c.DatabaseDriver {
	case "mongo":
		if c.MongoURI == "" {
			return nil, errors.New("MONGODB_URI is required for the mongo driver")
		}
	case "postgres":
		if c.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is required for the postgres driver")
		}
	case "memory":
		log.Warn("DATABASE_DRIVER=memory, donations are lost on restart")
	default:
		return nil, errors.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	return c, nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) RazorpayTimeout() time.Duration {
	return time.Duration(c.RazorpayTimeoutSeconds) * time.Second
}

// ChatIDs parses the comma separated TELEGRAM_CHAT_IDS, skipping bad entries.
func (c *Config) ChatIDs() []int64 {
	var ids []int64
	for _, raw := range splitList(c.TelegramChatIDs) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Errorf("invalid telegram chat id %q: %v", raw, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *Config) Origins() []string {
	return splitList(c.CORSOrigins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CreateUniqueInstance(service string) string {
	id, err := uuid.NewV4() // instance identifier
	if err != nil {
		log.Errorf("error generating instanceId: %s", err)
		os.Exit(1)
	}
	InstanceId = id.String()
	log.Infof(service+" service with Instance ID: %s is ready", id)
	return id.String()
}

func GetInstanceId() string {
	return InstanceId
}

func CORS(origins []string) *cors.Cors {
	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return corsOptions
}

func Logging(service string, toFile bool, level string) {
	log.SetFormatter(&log.TextFormatter{})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("invalid log level %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if !toFile {
		return
	}

	logFolder := ".l_g"

	_, err = os.Stat(logFolder)
	if os.IsNotExist(err) {
		err = os.Mkdir(logFolder, 0755)
		if err != nil {
			log.Warnf("unable to create folder for log %s", err)
			return
		}
	}

	logFilePath := filepath.Join(logFolder, service+".log")

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal("Failed to open log file:", err)
	}

	log.SetOutput(file)

	log.Infof("log to file started for service: %s", service)
}

func CustomLoggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.WithFields(log.Fields{
					"request_id":  middleware.GetReqID(r.Context()),
					"instance_id": GetInstanceId(),
				}).Infof("%s %s %s %d %s %s",
					r.Method,
					r.RequestURI,
					r.RemoteAddr,
					ww.Status(),
					http.StatusText(ww.Status()),
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
