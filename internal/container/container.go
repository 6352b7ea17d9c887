package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/config"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	"github.com/oksasatya/clubevents/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router wires modules from these singletons.

// Repositories is the storage backend selected at startup.
type Repositories struct {
	Users         repo.UserRepository
	Clubs         repo.ClubRepository
	Events        repo.EventRepository
	Registrations repo.RegistrationRepository
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	repos       Repositories

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)     { cfg = c }
func GetConfig() *config.Config      { return cfg }
func SetLogger(l *logrus.Logger)     { logger = l }
func GetLogger() *logrus.Logger      { return logger }
func SetPGPool(p *pgxpool.Pool)      { pgPool = p }
func GetPGPool() *pgxpool.Pool       { return pgPool }
func SetRepositories(r Repositories) { repos = r }
func GetRepositories() Repositories  { return repos }
func SetRedis(r *redis.Client)       { redisClient = r }
func GetRedis() *redis.Client        { return redisClient }
func SetGCS(s *storage.Client)       { gcsClient = s }
func GetGCS() *storage.Client        { return gcsClient }
func SetJWT(m *helpers.JWTManager)   { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
