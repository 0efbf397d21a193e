package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelfood/entity"
)

// UpsertStaff creates the account or resets its password and role.
func UpsertStaff(database *gorm.DB, username, password, role string) (*entity.Staff, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if !entity.IsStaffRole(role) {
		return nil, fmt.Errorf("invalid staff role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var s entity.Staff
	if err := database.Where(entity.Staff{Username: username}).FirstOrInit(&s).Error; err != nil {
		return nil, err
	}
	s.Password = string(hash)
	s.Role = role
	if err := database.Save(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SeedStaff creates the kitchen and admin accounts named in the environment.
func SeedStaff(database *gorm.DB, cfg *Config, log *logrus.Logger) error {
	accounts := []struct{ user, pass, role string }{
		{cfg.AdminUsername, cfg.AdminPassword, entity.RoleAdmin},
		{cfg.KitchenUsername, cfg.KitchenPassword, entity.RoleKitchen},
	}
	for _, a := range accounts {
		if a.user == "" || a.pass == "" {
			log.WithField("role", a.role).Warn("skip seeding staff: missing username/password")
			continue
		}
		var count int64
		if err := database.Model(&entity.Staff{}).Where("username = ?", a.user).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.WithField("username", a.user).Info("staff already exists")
			continue
		}
		if _, err := UpsertStaff(database, a.user, a.pass, a.role); err != nil {
			return fmt.Errorf("seed %s: %w", a.role, err)
		}
		log.WithFields(logrus.Fields{"username": a.user, "role": a.role}).Info("staff seeded")
	}
	return nil
}

type seedDish struct {
	name, category, image, description string
	price                              int64
}

var defaultCategories = []string{"Appetizers", "Main Course", "Desserts", "Beverages"}

var defaultMenu = []seedDish{
	{"Butter Chicken", "Main Course", "🍛", "Creamy tomato-based curry", 350},
	{"Paneer Tikka", "Appetizers", "🧀", "Grilled cottage cheese", 250},
	{"Biryani", "Main Course", "🍚", "Aromatic rice with spices", 400},
	{"Samosa", "Appetizers", "🥟", "Crispy fried pastry", 50},
	{"Gulab Jamun", "Desserts", "🍡", "Sweet milk solids", 100},
	{"Masala Dosa", "Main Course", "🥞", "South Indian crepe", 180},
	{"Mango Lassi", "Beverages", "🥤", "Yogurt mango drink", 120},
	{"Tandoori Chicken", "Main Course", "🍗", "Clay oven roasted", 380},
}

// SeedMenu loads the starter catalog. With reset, existing menu items (and through the
// cascade, their order lines) and categories are removed first.
func SeedMenu(database *gorm.DB, reset bool, log *logrus.Logger) error {
	return database.Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&entity.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&entity.MenuItem{}).Error; err != nil {
				return err
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&entity.Category{}).Error; err != nil {
				return err
			}
		}

		cats := make(map[string]uint, len(defaultCategories))
		for _, name := range defaultCategories {
			var c entity.Category
			if err := tx.Where(entity.Category{Name: name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
			cats[name] = c.ID
			log.WithField("category", name).Debug("category created/found")
		}

		for _, d := range defaultMenu {
			var count int64
			if err := tx.Model(&entity.MenuItem{}).Where("name = ?", d.name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			item := entity.MenuItem{
				Name:            d.name,
				CategoryID:      cats[d.category],
				Price:           decimal.NewFromInt(d.price),
				Image:           d.image,
				Description:     d.description,
				Available:       true,
				DisplayQuantity: 1,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		log.Info("menu seeded")
		return nil
	})
}
