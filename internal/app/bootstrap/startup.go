// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/normalize"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ContestHub uses it to guarantee an admin account exists, so payment
// verification and the registration report are reachable on a fresh
// deployment without poking the database by hand.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		logger.Info("admin_email not configured, skipping admin bootstrap")
		return nil
	}
	return ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger)
}

// ensureAdmin makes sure an account with the given email exists and carries
// the admin role. An existing account is promoted in place; a missing one is
// created with the configured password.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	email = normalize.Email(email)
	users := deps.MongoDatabase.Collection("users")

	var existing models.User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		_, err = users.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{
			"role":       models.RoleAdmin,
			"updated_at": time.Now().UTC(),
		}})
		if err != nil {
			return fmt.Errorf("promote admin %s: %w", email, err)
		}
		logger.Info("promoted existing account to admin", zap.String("email", email))
		return nil

	case err == mongo.ErrNoDocuments:
		if password == "" {
			return fmt.Errorf("admin account %s does not exist and admin_password is empty", email)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		now := time.Now().UTC()
		_, err = users.InsertOne(ctx, models.User{
			ID:         primitive.NewObjectID(),
			FullName:   "Administrator",
			Nickname:   "admin",
			Email:      email,
			Password:   string(hash),
			Role:       models.RoleAdmin,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("create admin %s: %w", email, err)
		}
		logger.Info("created admin account", zap.String("email", email))
		return nil

	default:
		return fmt.Errorf("lookup admin %s: %w", email, err)
	}
}
