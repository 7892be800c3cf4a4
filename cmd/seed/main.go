package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forgiv/bloggy-server/internal/auth"
	"github.com/forgiv/bloggy-server/internal/config"
	"github.com/forgiv/bloggy-server/internal/db"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/logger"
	"github.com/forgiv/bloggy-server/internal/repository"
	"github.com/forgiv/bloggy-server/internal/service"
	"github.com/forgiv/bloggy-server/internal/validate"
)

//go:embed seed.json
var defaultSeed []byte

// SeedData is the demo content loaded by the seeder.
type SeedData struct {
	Users []SeedUser `json:"users"`
}

// SeedUser is a user with the posts they wrote.
type SeedUser struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Blog     string     `json:"blog"`
	Posts    []SeedPost `json:"posts"`
}

// SeedPost is a post with the comments left on it.
type SeedPost struct {
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Slug     string        `json:"slug"`
	Comments []SeedComment `json:"comments"`
}

// SeedComment is a comment by an author seeded in the same file.
type SeedComment struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Stats counts what a seed run did.
type Stats struct {
	Users    int
	Posts    int
	Comments int
	Skipped  int
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)
	log.Info("Starting seed script")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables before seeding")
		if err := db.Reset(gormDB); err != nil {
			log.WithError(err).Fatal("Failed to drop tables")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	data, err := loadSeed(os.Getenv("SEED_SOURCE"))
	if err != nil {
		log.WithError(err).Fatal("Failed to load seed data")
	}

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	hasher := auth.NewBcryptHasher()

	s := &seeder{
		users:    service.NewUserService(userRepo, postRepo, hasher, log),
		posts:    service.NewPostService(postRepo, log),
		comments: service.NewCommentService(userRepo, postRepo, commentRepo, log),
		userRepo: userRepo,
		log:      log,
	}
	stats, err := s.run(context.Background(), data)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed")
	}

	log.WithFields(logrus.Fields{
		"users":    stats.Users,
		"posts":    stats.Posts,
		"comments": stats.Comments,
		"skipped":  stats.Skipped,
	}).Info("Seed completed successfully")
}

// loadSeed reads seed data from an http(s) URL, a file path, or the embedded default.
func loadSeed(source string) (*SeedData, error) {
	var raw []byte
	switch {
	case source == "":
		raw = defaultSeed
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch seed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
	default:
		var err error
		raw, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &data, nil
}

type seeder struct {
	users    service.UserService
	posts    service.PostService
	comments service.CommentService
	userRepo repository.UserRepository
	log      logrus.FieldLogger
}

// run creates every user first so comment authors can be any seeded user.
// Entries that fail validation or already exist are skipped.
func (s *seeder) run(ctx context.Context, data *SeedData) (Stats, error) {
	var stats Stats

	for _, u := range data.Users {
		body := validate.Body{"username": u.Username, "password": u.Password, "blog": u.Blog}
		if err := validate.UserCreate.Check(body); err != nil {
			s.log.WithError(err).WithField("username", u.Username).Warn("Skipping invalid user")
			stats.Skipped++
			continue
		}
		_, err := s.users.Register(ctx, service.RegisterInput{Username: u.Username, Password: u.Password, Blog: u.Blog})
		switch {
		case errors.Is(err, apperr.ErrDuplicateUsername):
			stats.Skipped++
		case err != nil:
			return stats, fmt.Errorf("create user %s: %w", u.Username, err)
		default:
			stats.Users++
		}
	}

	for _, u := range data.Users {
		owner, err := s.userRepo.FindByUsername(ctx, u.Username)
		if err != nil {
			continue
		}
		for _, p := range u.Posts {
			body := validate.Body{"title": p.Title, "content": p.Content, "slug": p.Slug}
			if err := validate.PostCreate.Check(body); err != nil {
				s.log.WithError(err).WithField("slug", p.Slug).Warn("Skipping invalid post")
				stats.Skipped++
				continue
			}
			post, err := s.posts.Create(ctx, owner.ID, service.PostInput{Title: p.Title, Content: p.Content, Slug: p.Slug})
			if errors.Is(err, apperr.ErrDuplicatePost) {
				// Comments of an existing post were seeded with it.
				stats.Skipped++
				continue
			}
			if err != nil {
				return stats, fmt.Errorf("create post %s: %w", p.Slug, err)
			}
			stats.Posts++

			for _, c := range p.Comments {
				author, err := s.userRepo.FindByUsername(ctx, c.Author)
				if err != nil {
					s.log.WithField("author", c.Author).Warn("Skipping comment by unknown author")
					stats.Skipped++
					continue
				}
				if err := validate.CommentUpdate.Check(validate.Body{"content": c.Content}); err != nil {
					stats.Skipped++
					continue
				}
				if _, err := s.comments.Create(ctx, author.ID, post.ID, c.Content); err != nil {
					return stats, fmt.Errorf("create comment on %s: %w", p.Slug, err)
				}
				stats.Comments++
			}
		}
	}

	return stats, nil
}
