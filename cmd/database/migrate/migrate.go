package migration

import (
	"fmt"
	"log"

	"canteen-backend/entities"

	"gorm.io/gorm"
)

// invitationFunctions back the token lookup and the accept bookkeeping so
// that neither needs read access to the invitations table itself.
var invitationFunctions = []string{
	`CREATE OR REPLACE FUNCTION get_invitation_details_by_token(invitation_token TEXT)
RETURNS TABLE(email TEXT, role VARCHAR, canteen_id UUID, status VARCHAR, expires_at TIMESTAMPTZ)
LANGUAGE sql SECURITY DEFINER AS $$
	SELECT i.email, i.role, i.canteen_id, i.status, i.expires_at
	FROM invitations i
	WHERE i.token = invitation_token
	LIMIT 1
$$;`,
	`CREATE OR REPLACE FUNCTION mark_invitation_accepted(invitation_token TEXT)
RETURNS VOID
LANGUAGE sql SECURITY DEFINER AS $$
	UPDATE invitations
	SET status = 'accepted', updated_at = NOW()
	WHERE token = invitation_token AND status = 'pending'
$$;`,
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Printf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"session", &entities.Session{}},
		{"canteen", &entities.Canteen{}},
		{"profile", &entities.Profile{}},
		{"category", &entities.Category{}},
		{"menu item", &entities.MenuItem{}},
		{"order", &entities.Order{}},
		{"order item", &entities.OrderItem{}},
		{"invitation", &entities.Invitation{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	for _, fn := range invitationFunctions {
		if err := db.Exec(fn).Error; err != nil {
			log.Printf("Error creating invitation function: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
