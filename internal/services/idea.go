package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrStore        = errors.New("store operation failed")
	ErrIdeaNotFound = errors.New("startup idea not found")
)

const ideaColumns = `id, user_id, name, concept, monetization, tools_needed, mvp_plan, landing_page_html, user_inputs, created_at`

// IdeaService persists generated ideas in the startup_ideas table. Every operation is
// scoped to the owning user.
type IdeaService struct {
	db DBConn
}

func NewIdeaService(db DBConn) *IdeaService {
	return &IdeaService{db: db}
}

func (s *IdeaService) Save(ctx context.Context, userID uuid.UUID, idea models.StartupIdea, answers models.FormAnswers) (*models.SavedIdea, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	idea.Normalize()

	tools, err := json.Marshal(idea.ToolsNeeded)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding tools_needed: %w", ErrStore, err)
	}
	plan, err := json.Marshal(idea.MVPPlan)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding mvp_plan: %w", ErrStore, err)
	}
	inputs, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding user_inputs: %w", ErrStore, err)
	}

	var landing *string
	if idea.LandingPageHTML != "" {
		landing = &idea.LandingPageHTML
	}

	saved := &models.SavedIdea{
		UserID:      userID,
		UserInputs:  answers,
		StartupIdea: idea,
	}
	err = s.db.QueryRow(ctx,
		`INSERT INTO startup_ideas (user_id, name, concept, monetization, tools_needed, mvp_plan, landing_page_html, user_inputs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		userID, idea.Name, idea.Concept, idea.Monetization, tools, plan, landing, inputs,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: inserting startup idea: %w", ErrStore, err)
	}

	return saved, nil
}

// List returns the user's ideas, newest first. The slice is never nil.
func (s *IdeaService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+ideaColumns+`
		 FROM startup_ideas
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing startup ideas: %w", ErrStore, err)
	}
	defer rows.Close()

	ideas := make([]models.SavedIdea, 0)
	for rows.Next() {
		idea, err := scanIdea(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning startup idea: %w", ErrStore, err)
		}
		ideas = append(ideas, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating startup ideas: %w", ErrStore, err)
	}

	return ideas, nil
}

func (s *IdeaService) Get(ctx context.Context, userID, ideaID uuid.UUID) (*models.SavedIdea, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	idea, err := scanIdea(ctx, s.db.QueryRow(ctx,
		`SELECT `+ideaColumns+`
		 FROM startup_ideas
		 WHERE id = $1 AND user_id = $2`,
		ideaID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrIdeaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getting startup idea: %w", ErrStore, err)
	}
	return idea, nil
}

// Delete removes one idea. Deleting an id that does not exist (or belongs to
// someone else) succeeds without effect.
func (s *IdeaService) Delete(ctx context.Context, userID, ideaID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrAuthRequired
	}

	result, err := s.db.Exec(ctx,
		"DELETE FROM startup_ideas WHERE id = $1 AND user_id = $2",
		ideaID, userID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting startup idea: %w", ErrStore, err)
	}
	if result.RowsAffected() == 0 {
		logging.FromContext(ctx).Debug("Delete of absent startup idea", map[string]interface{}{
			"idea_id": ideaID.String(),
			"user_id": userID.String(),
		})
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(ctx context.Context, row scanner) (*models.SavedIdea, error) {
	var (
		idea    models.SavedIdea
		tools   []byte
		plan    []byte
		landing *string
		inputs  []byte
	)
	if err := row.Scan(&idea.ID, &idea.UserID, &idea.Name, &idea.Concept, &idea.Monetization,
		&tools, &plan, &landing, &inputs, &idea.CreatedAt); err != nil {
		return nil, err
	}

	idea.ToolsNeeded = decodeStringList(tools)
	idea.MVPPlan = decodeStringList(plan)
	if landing != nil {
		idea.LandingPageHTML = *landing
	}
	if len(inputs) > 0 {
		if err := json.Unmarshal(inputs, &idea.UserInputs); err != nil {
			idea.UserInputs = models.FormAnswers{}
			logging.FromContext(ctx).WithError(err).Warn("Unreadable user_inputs on startup idea", map[string]interface{}{
				"idea_id": idea.ID.String(),
			})
		}
	}
	return &idea, nil
}

// decodeStringList reads a JSON array of strings; anything else yields an empty list.
func decodeStringList(raw []byte) []string {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
