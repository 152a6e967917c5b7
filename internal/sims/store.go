package sims

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simtracker/internal/models"
)

// ErrMEIDRequired is the one validation failure the store reports. The API
// layer renders it inside the legacy response envelope, not as an HTTP error.
var ErrMEIDRequired = errors.New("MEID is required")

// createDateLayout matches what Date.toLocaleString produced under the old
// server, which the UI still feeds to new Date(...).
const createDateLayout = "1/2/2006, 3:04:05 PM"

// Store owns the sims table. One instance is built at process start and
// handed to every handler; there is no package-level database handle.
type Store struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewStore(db *gorm.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc, now: time.Now}
}

// SimInput is a record as submitted by a caller: no id, no create date, no
// derived fields.
type SimInput struct {
	MEID               string `json:"meid"`
	ProjectName        string `json:"project_name"`
	Brand              string `json:"brand"`
	ICCID              string `json:"iccid"`
	AddedFeatures      string `json:"added_features"`
	BanToActivateOn    string `json:"ban_to_activate_on"`
	LengthOfActivation string `json:"length_of_activation"`
	MDN                string `json:"mdn"`
	MSID               string `json:"msid"`
	MSL                string `json:"msl"`
	RequestOn          string `json:"request_on"`
	ExpiresOn          string `json:"expires_on"`
	Comments           string `json:"comments"`
}

type CreateOutcome string

const (
	Inserted         CreateOutcome = "inserted"
	SkippedDuplicate CreateOutcome = "skipped-duplicate"
)

// CreateResult distinguishes a fresh insert from a silently ignored
// duplicate. The legacy envelope reports success either way; callers that
// care can look at Outcome.
type CreateResult struct {
	Outcome CreateOutcome `json:"outcome"`
	ID      uint          `json:"id,omitempty"`
}

// Create inserts one record. The insert is idempotent on the MEID business
// key: a duplicate is skipped without error, matching the old
// INSERT OR IGNORE behavior.
func (s *Store) Create(ctx context.Context, in SimInput) (CreateResult, error) {
	meid := strings.TrimSpace(in.MEID)
	if meid == "" {
		return CreateResult{}, ErrMEIDRequired
	}
	sim := models.Sim{
		MEID:               meid,
		ProjectName:        in.ProjectName,
		Brand:              in.Brand,
		ICCID:              in.ICCID,
		AddedFeatures:      in.AddedFeatures,
		BanToActivateOn:    in.BanToActivateOn,
		LengthOfActivation: in.LengthOfActivation,
		MDN:                in.MDN,
		MSID:               in.MSID,
		MSL:                in.MSL,
		RequestOn:          in.RequestOn,
		ExpiresOn:          in.ExpiresOn,
		Comments:           in.Comments,
		CreateDate:         s.now().In(s.loc).Format(createDateLayout),
	}
	tx := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "meid"}}, DoNothing: true}).
		Create(&sim)
	if tx.Error != nil {
		return CreateResult{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return CreateResult{Outcome: SkippedDuplicate}, nil
	}
	return CreateResult{Outcome: Inserted, ID: sim.ID}, nil
}

type BulkResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// BulkCreate applies Create to each input independently. One bad row never
// aborts the rest, and there is no wrapping transaction: a crash mid-batch
// leaves a partial import, which is the accepted legacy behavior.
func (s *Store) BulkCreate(ctx context.Context, ins []SimInput) BulkResult {
	var res BulkResult
	for _, in := range ins {
		cr, err := s.Create(ctx, in)
		switch {
		case err != nil:
			res.Failed++
		case cr.Outcome == SkippedDuplicate:
			res.Skipped++
		default:
			res.Inserted++
		}
	}
	return res
}

// ListAll returns every record ordered by expires_on ascending, each
// annotated with its derived days_left.
func (s *Store) ListAll(ctx context.Context) ([]models.Sim, error) {
	var out []models.Sim
	if err := s.db.WithContext(ctx).Order("expires_on asc").Find(&out).Error; err != nil {
		return nil, err
	}
	now := s.now()
	for i := range out {
		Annotate(&out[i], now, s.loc)
	}
	return out, nil
}

// SimPatch is a partial update: nil fields keep their stored value, non-nil
// fields replace it. id and create_date are never touched.
type SimPatch struct {
	MEID               *string `json:"meid"`
	ProjectName        *string `json:"project_name"`
	Brand              *string `json:"brand"`
	ICCID              *string `json:"iccid"`
	AddedFeatures      *string `json:"added_features"`
	BanToActivateOn    *string `json:"ban_to_activate_on"`
	LengthOfActivation *string `json:"length_of_activation"`
	MDN                *string `json:"mdn"`
	MSID               *string `json:"msid"`
	MSL                *string `json:"msl"`
	RequestOn          *string `json:"request_on"`
	ExpiresOn          *string `json:"expires_on"`
	Comments           *string `json:"comments"`
}

func (p SimPatch) changes() map[string]interface{} {
	ch := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			ch[col] = *v
		}
	}
	set("meid", p.MEID)
	set("project_name", p.ProjectName)
	set("brand", p.Brand)
	set("iccid", p.ICCID)
	set("added_features", p.AddedFeatures)
	set("ban_to_activate_on", p.BanToActivateOn)
	set("length_of_activation", p.LengthOfActivation)
	set("mdn", p.MDN)
	set("msid", p.MSID)
	set("msl", p.MSL)
	set("request_on", p.RequestOn)
	set("expires_on", p.ExpiresOn)
	set("comments", p.Comments)
	return ch
}

type UpdateResult struct {
	RowsAffected int64       `json:"changes"`
	Sim          *models.Sim `json:"sim,omitempty"`
}

// Update writes the present patch fields against one id. A missing id is not
// an error: zero rows are affected and the result carries no row, matching
// the old permissive handler. MEID uniqueness is not re-checked here; the
// unique index rejects a duplicate and that surfaces as a plain storage
// error.
func (s *Store) Update(ctx context.Context, id uint, p SimPatch) (UpdateResult, error) {
	var res UpdateResult
	if ch := p.changes(); len(ch) > 0 {
		tx := s.db.WithContext(ctx).Model(&models.Sim{}).Where("id = ?", id).Updates(ch)
		if tx.Error != nil {
			return res, tx.Error
		}
		res.RowsAffected = tx.RowsAffected
	}
	var sim models.Sim
	err := s.db.WithContext(ctx).First(&sim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, nil
		}
		return res, err
	}
	Annotate(&sim, s.now(), s.loc)
	res.Sim = &sim
	return res, nil
}

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// Delete removes one record by id. Deleting an absent id reports success
// with Deleted=false.
func (s *Store) Delete(ctx context.Context, id uint) (DeleteResult, error) {
	tx := s.db.WithContext(ctx).Delete(&models.Sim{}, "id = ?", id)
	if tx.Error != nil {
		return DeleteResult{}, tx.Error
	}
	return DeleteResult{Deleted: tx.RowsAffected > 0}, nil
}
