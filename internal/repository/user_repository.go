package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/farmsync/farmsync-api/internal/model"
	"github.com/farmsync/farmsync-api/internal/utils"
)

// UserRepo is the credential store: it owns the users table and the two
// profile tables hanging off it.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user together with an empty
// profile row of the matching type in a single transaction, mirroring the
// nested create the signup flow requires. Returns the new user's ID.
func (r *UserRepo) Create(ctx context.Context, email, password, name, userType string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, user_type) VALUES (?,?,?,?)",
		email, hash, name, userType)
	if err != nil {
		// MySQL error 1062: duplicate entry on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	switch userType {
	case model.UserTypeFarmer:
		_, err = tx.ExecContext(ctx,
			"INSERT INTO farmer_profiles (user_id, farm_name, location, farm_size, crop_types) VALUES (?,'','',0,'[]')",
			id)
	case model.UserTypeResearcher:
		_, err = tx.ExecContext(ctx,
			"INSERT INTO researcher_profiles (user_id, institution, specialization, research_focus, is_policymaker) VALUES (?,'','','[]',0)",
			id)
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,user_type,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.UserType, &u.CreatedAt, &u.UpdatedAt)
	u.Name = name.String
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,user_type,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.UserType, &u.CreatedAt, &u.UpdatedAt)
	u.Name = name.String
	return u, err
}

// Exists reports whether a user with the given email is already registered.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePassword replaces the stored hash for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?", hash, id)
	return err
}

// FarmerProfile loads the farmer profile owned by a user.
func (r *UserRepo) FarmerProfile(ctx context.Context, userID uint64) (model.FarmerProfile, error) {
	var p model.FarmerProfile
	var crops []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,farm_name,location,farm_size,crop_types FROM farmer_profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.FarmName, &p.Location, &p.FarmSize, &crops)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(crops, &p.CropTypes); err != nil {
		return p, err
	}
	return p, nil
}

// ResearcherProfile loads the researcher profile owned by a user.
func (r *UserRepo) ResearcherProfile(ctx context.Context, userID uint64) (model.ResearcherProfile, error) {
	var p model.ResearcherProfile
	var focus []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,institution,specialization,research_focus,is_policymaker FROM researcher_profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.Institution, &p.Specialization, &focus, &p.IsPolicymaker)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(focus, &p.ResearchFocus); err != nil {
		return p, err
	}
	return p, nil
}

// UpdateFarmerProfile overwrites the farmer profile row for p.UserID. The
// row already exists (created empty at signup), so this is a plain update.
func (r *UserRepo) UpdateFarmerProfile(ctx context.Context, p model.FarmerProfile) error {
	crops, err := json.Marshal(p.CropTypes)
	if err != nil {
		return err
	}
	// The row exists for every FARMER user; the handler has already checked
	// the caller's type, so a zero-row update only happens on a no-op edit.
	_, err = r.DB.ExecContext(ctx,
		"UPDATE farmer_profiles SET farm_name=?, location=?, farm_size=?, crop_types=? WHERE user_id=?",
		p.FarmName, p.Location, p.FarmSize, crops, p.UserID)
	return err
}

// UpdateResearcherProfile overwrites the researcher profile row for p.UserID.
func (r *UserRepo) UpdateResearcherProfile(ctx context.Context, p model.ResearcherProfile) error {
	focus, err := json.Marshal(p.ResearchFocus)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE researcher_profiles SET institution=?, specialization=?, research_focus=?, is_policymaker=? WHERE user_id=?",
		p.Institution, p.Specialization, focus, p.IsPolicymaker, p.UserID)
	return err
}
