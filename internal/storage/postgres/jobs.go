package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/storage"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
//
// Applications live in the job_applications child table with
// PRIMARY KEY (job_id, freelancer_id) and ON DELETE CASCADE, so the
// no-duplicate-application invariant and delete-with-applications are
// enforced by the schema itself. The lifecycle mutations (Assign, Complete)
// carry their state preconditions in the UPDATE's WHERE clause; the
// single-statement atomicity of Postgres is the concurrency boundary.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobSelect = `
	SELECT j.id, j.title, j.description, j.budget, j.category, j.created_by,
	       j.status, j.assigned_to, j.created_at, j.updated_at,
	       u.id, u.name, u.email, u.role
	FROM jobs j
	JOIN users u ON u.id = j.created_by
`

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	var creator models.UserSummary
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Budget,
		&job.Category,
		&job.CreatedBy,
		&job.Status,
		&job.AssignedTo,
		&job.CreatedAt,
		&job.UpdatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
		&creator.Role,
	)
	if err != nil {
		return nil, err
	}
	job.Creator = &creator
	job.Applications = []models.Application{}
	return &job, nil
}

// Create saves a new job posting with status open and no assignee.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	category := req.Category
	if category == "" {
		category = "General"
	}

	query := `
		INSERT INTO jobs (id, title, description, budget, category, created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`
	id := uuid.New()
	var budget float64
	if req.Budget != nil {
		budget = *req.Budget
	}

	var createdID uuid.UUID
	err := r.db.QueryRow(ctx, query,
		id,
		req.Title,
		req.Description,
		budget,
		category,
		req.Caller.UserID,
		models.JobStatusOpen,
	).Scan(&createdID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			log.Printf("Error creating job: unknown creator %s: %v\n", req.Caller.UserID, err)
			return nil, fmt.Errorf("failed to create job: invalid creator: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return r.GetByID(ctx, &dto.GetJobByIDRequest{ID: createdID})
}

// GetByID retrieves a job with its creator summary and applications.
func (r *JobRepo) GetByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, req.ID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", req.ID, err)
	}

	jobs := []models.Job{*job}
	if err := r.attachApplications(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

// ListAll retrieves every job, newest-created first.
func (r *JobRepo) ListAll(ctx context.Context) ([]models.Job, error) {
	return r.list(ctx, jobSelect+` ORDER BY j.created_at DESC`)
}

// ListByCreator retrieves jobs posted by a specific client, newest first.
func (r *JobRepo) ListByCreator(ctx context.Context, clientID uuid.UUID) ([]models.Job, error) {
	return r.list(ctx, jobSelect+` WHERE j.created_by = $1 ORDER BY j.created_at DESC`, clientID)
}

// ListByApplicant retrieves jobs carrying an application from the given
// freelancer, newest first.
func (r *JobRepo) ListByApplicant(ctx context.Context, freelancerID uuid.UUID) ([]models.Job, error) {
	query := jobSelect + `
		WHERE EXISTS (
			SELECT 1 FROM job_applications a
			WHERE a.job_id = j.id AND a.freelancer_id = $1
		)
		ORDER BY j.created_at DESC`
	return r.list(ctx, query, freelancerID)
}

// ListByAssignee retrieves jobs assigned to the given freelancer, most
// recently updated first.
func (r *JobRepo) ListByAssignee(ctx context.Context, freelancerID uuid.UUID) ([]models.Job, error) {
	return r.list(ctx, jobSelect+` WHERE j.assigned_to = $1 ORDER BY j.updated_at DESC`, freelancerID)
}

func (r *JobRepo) list(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Printf("Error scanning job row: %v\n", err)
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	if err := r.attachApplications(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// attachApplications loads the applications (with freelancer summaries) for
// all given jobs in one round trip, in application order.
func (r *JobRepo) attachApplications(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(jobs))
	index := make(map[uuid.UUID]int, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
		index[jobs[i].ID] = i
	}

	query := `
		SELECT a.job_id, a.freelancer_id, a.cover_letter, a.applied_at,
		       u.id, u.name, u.email, u.role
		FROM job_applications a
		JOIN users u ON u.id = a.freelancer_id
		WHERE a.job_id = ANY($1)
		ORDER BY a.applied_at ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		log.Printf("Error querying applications: %v\n", err)
		return fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var app models.Application
		var freelancer models.UserSummary
		err := rows.Scan(
			&jobID,
			&app.Freelancer,
			&app.CoverLetter,
			&app.AppliedAt,
			&freelancer.ID,
			&freelancer.Name,
			&freelancer.Email,
			&freelancer.Role,
		)
		if err != nil {
			log.Printf("Error scanning application row: %v\n", err)
			return fmt.Errorf("failed to scan application: %w", err)
		}
		app.FreelancerInfo = &freelancer
		i := index[jobID]
		jobs[i].Applications = append(jobs[i].Applications, app)
	}
	return rows.Err()
}

// InsertApplication appends an application. The primary key on
// (job_id, freelancer_id) makes duplicate applications impossible even under
// concurrent calls; ON CONFLICT DO NOTHING turns the duplicate into a
// zero-row result mapped to ErrConflict.
func (r *JobRepo) InsertApplication(ctx context.Context, jobID, freelancerID uuid.UUID, coverLetter string) error {
	query := `
		INSERT INTO job_applications (job_id, freelancer_id, cover_letter, applied_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (job_id, freelancer_id) DO NOTHING
	`
	cmdTag, err := r.db.Exec(ctx, query, jobID, freelancerID, coverLetter)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			log.Printf("Error applying to job %s: job or freelancer missing: %v\n", jobID, err)
			return storage.ErrNotFound
		}
		log.Printf("Error applying to job %s: %v\n", jobID, err)
		return fmt.Errorf("failed to apply to job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrConflict
	}
	return nil
}

// Assign performs the open -> assigned transition. The WHERE clause requires
// the job to still be open and the freelancer to have an application on it,
// so the transition (and the single population of assigned_to) happens at
// most once no matter how calls interleave.
func (r *JobRepo) Assign(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET assigned_to = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		  AND status = $4
		  AND EXISTS (
			SELECT 1 FROM job_applications a
			WHERE a.job_id = jobs.id AND a.freelancer_id = $2
		  )
	`
	cmdTag, err := r.db.Exec(ctx, query, jobID, freelancerID, models.JobStatusAssigned, models.JobStatusOpen)
	if err != nil {
		log.Printf("Error assigning job %s to %s: %v\n", jobID, freelancerID, err)
		return nil, fmt.Errorf("failed to assign job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, r.mutationMiss(ctx, jobID)
	}
	return r.GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID})
}

// Complete performs the assigned -> completed transition for the assignee.
// completed is terminal: no statement in this repository ever moves a job
// out of it.
func (r *JobRepo) Complete(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND assigned_to = $2 AND status = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, jobID, freelancerID, models.JobStatusCompleted, models.JobStatusAssigned)
	if err != nil {
		log.Printf("Error completing job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to complete job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, r.mutationMiss(ctx, jobID)
	}
	return r.GetByID(ctx, &dto.GetJobByIDRequest{ID: jobID})
}

// Delete removes a job; the schema cascades to its applications.
func (r *JobRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", jobID, err)
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// mutationMiss classifies a zero-row conditional update: the job either
// disappeared (ErrNotFound) or its state no longer satisfies the
// precondition (ErrConflict).
func (r *JobRepo) mutationMiss(ctx context.Context, jobID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check job %s: %w", jobID, err)
	}
	if !exists {
		return storage.ErrNotFound
	}
	return storage.ErrConflict
}
