// Package generation is the top-level state machine that sequences ranking,
// enhancement and assembly for one document, persists progress after every
// transition, and reports terminal state.
package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-generator/internal/assembly"
	"github.com/jonathan/resume-generator/internal/enhancement"
	"github.com/jonathan/resume-generator/internal/ranking"
	"github.com/jonathan/resume-generator/internal/types"
)

// Fixed progress weights per completed stage; external pollers render these
// without re-deriving them.
const (
	progressRanking    = 40
	progressEnhancing  = 70
	progressAssembling = 100
)

// Stage names recorded on the document record
const (
	StageRanking    = "ranking"
	StageEnhancing  = "enhancing"
	StageAssembling = "assembling"
)

// ProgressEvent is emitted at every state transition
type ProgressEvent struct {
	DocumentID string               `json:"document_id"`
	Status     types.DocumentStatus `json:"status"`
	Stage      string               `json:"stage,omitempty"`
	Progress   int                  `json:"progress"`
	Message    string               `json:"message,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures one generation run
type Options struct {
	UserID       string             `validate:"required"`
	JobID        string             `validate:"required"`
	DocumentType types.DocumentType `validate:"required,oneof=resume cover_letter"`
	Assembly     assembly.Options
	// Rerank discards any current ranking for the (user, job) pair and
	// ranks again. Ranking is otherwise idempotent per job.
	Rerank bool
	// ExperienceOverride, when set, replaces the LLM-produced experience
	// order wholesale. Same for ProjectOverride.
	ExperienceOverride []string
	ProjectOverride    []string
	// VerifyFacts runs the post-hoc numeric fact check over enhanced text.
	// Unsupported claims are logged and recorded on the document metadata;
	// they never fail the run.
	VerifyFacts bool
	OnProgress  ProgressCallback
}

// Orchestrator runs the generation state machine. Runs for different
// (user, job) pairs are independent and may execute concurrently; the only
// shared resource is the current-ranking record, guarded by RankingStore.Replace.
type Orchestrator struct {
	ranker    *ranking.Ranker
	enhancer  *enhancement.Enhancer
	profiles  ProfileStore
	rankings  RankingStore
	documents DocumentStore
	validate  *validator.Validate
}

// NewOrchestrator wires the stage components to their stores
func NewOrchestrator(ranker *ranking.Ranker, enhancer *enhancement.Enhancer, profiles ProfileStore, rankings RankingStore, documents DocumentStore) *Orchestrator {
	return &Orchestrator{
		ranker:    ranker,
		enhancer:  enhancer,
		profiles:  profiles,
		rankings:  rankings,
		documents: documents,
		validate:  validator.New(),
	}
}

// Run executes one generation end to end and returns the terminal document
// record. Stage errors never propagate past this boundary: ranking and
// assembly failures mark the record failed, enhancement failures are logged
// and assembly proceeds with original text. The returned error mirrors the
// recorded failure for callers that prefer error flow.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*types.GeneratedDocument, error) {
	if opts.Assembly.DocumentType == "" {
		opts.Assembly = assembly.DefaultOptions()
	}
	opts.Assembly.DocumentType = opts.DocumentType
	if err := o.validate.Struct(opts); err != nil {
		return nil, &OrchestrationError{Stage: "validation", Message: "invalid generation options", Cause: err}
	}

	now := time.Now().UTC()
	doc := &types.GeneratedDocument{
		ID:           uuid.NewString(),
		UserID:       opts.UserID,
		JobID:        opts.JobID,
		DocumentType: opts.DocumentType,
		Status:       types.StatusPending,
		CreatedAt:    now,
		StartedAt:    &now,
	}
	if err := o.documents.Create(ctx, doc); err != nil {
		return nil, &OrchestrationError{Stage: "init", Message: "failed to create document record", Cause: err}
	}

	profile, job, err := o.loadInputs(ctx, opts)
	if err != nil {
		return o.fail(ctx, doc, opts, "init", err)
	}

	if cancelled := o.checkCancelled(ctx, doc, opts); cancelled {
		return doc, nil
	}

	durations := map[string]int64{}

	// Stage 1: ranking
	if !o.transition(ctx, doc, opts, types.StatusRanking, StageRanking, 0, "ranking content") {
		return doc, nil
	}
	stageStart := time.Now()
	rankResult, err := o.runRanking(ctx, doc, opts, profile, job)
	if err != nil {
		return o.fail(ctx, doc, opts, StageRanking, err)
	}
	durations[StageRanking] = time.Since(stageStart).Milliseconds()
	if !o.transition(ctx, doc, opts, types.StatusEnhancing, StageRanking, progressRanking, "ranking complete") {
		return doc, nil
	}

	if cancelled := o.checkCancelled(ctx, doc, opts); cancelled {
		return doc, nil
	}

	// Stage 2: enhancement. Failure is non-fatal: a tailored-but-unpolished
	// document beats no document.
	stageStart = time.Now()
	enhResult := o.runEnhancement(ctx, doc, opts, rankResult, profile, job)
	durations[StageEnhancing] = time.Since(stageStart).Milliseconds()

	var factWarnings []string
	if opts.VerifyFacts && enhResult != nil {
		factWarnings = verifyEnhancement(profile, enhResult)
		for _, warning := range factWarnings {
			log.Printf("generation %s: fact check: %s", doc.ID, warning)
		}
	}
	if !o.transition(ctx, doc, opts, types.StatusAssembling, StageEnhancing, progressEnhancing, "enhancement complete") {
		return doc, nil
	}

	// Stage 3: assembly. Cancellation is rejected from here on; a usable
	// draft exists once assembly starts.
	stageStart = time.Now()
	assembled, err := assembly.Assemble(rankResult, enhResult, profile, job, opts.Assembly)
	if err != nil {
		return o.fail(ctx, doc, opts, StageAssembling, err)
	}
	durations[StageAssembling] = time.Since(stageStart).Milliseconds()
	assembled.Structured.Metadata.StageDurationsMS = durations
	assembled.Structured.Metadata.FactWarnings = factWarnings

	completedAt := time.Now().UTC()
	doc.ContentText = assembled.ContentText
	doc.Structured = assembled.Structured
	doc.ATSScore = assembled.ATSScore
	doc.CompletedAt = &completedAt
	o.transition(ctx, doc, opts, types.StatusCompleted, StageAssembling, progressAssembling, "document assembled")

	return doc, nil
}

// Cancel marks a pending/ranking/enhancing document cancelled. Once assembly
// has started the request is rejected.
func (o *Orchestrator) Cancel(ctx context.Context, documentID string) error {
	doc, err := o.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return &NotFoundError{Resource: "document", ID: documentID}
	}

	switch doc.Status {
	case types.StatusPending, types.StatusRanking, types.StatusEnhancing:
		doc.Status = types.StatusCancelled
		completedAt := time.Now().UTC()
		doc.CompletedAt = &completedAt
		return o.documents.Update(ctx, doc)
	default:
		return &CancellationError{Status: string(doc.Status)}
	}
}

// loadInputs reads the profile and job concurrently; both reads are
// suspension points and neither depends on the other.
func (o *Orchestrator) loadInputs(ctx context.Context, opts Options) (*types.Profile, *types.Job, error) {
	var profile *types.Profile
	var job *types.Job

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := o.profiles.GetProfile(gCtx, opts.UserID)
		if err != nil {
			return err
		}
		if p == nil {
			return &NotFoundError{Resource: "profile", ID: opts.UserID}
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		j, err := o.profiles.GetJob(gCtx, opts.JobID)
		if err != nil {
			return err
		}
		if j == nil {
			return &NotFoundError{Resource: "job", ID: opts.JobID}
		}
		job = j
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, job, nil
}

// runRanking reuses the current ranking for the pair when one exists, unless
// a rerank was requested. A fresh ranking atomically supersedes the prior one.
func (o *Orchestrator) runRanking(ctx context.Context, doc *types.GeneratedDocument, opts Options, profile *types.Profile, job *types.Job) (*types.RankingResult, error) {
	if !opts.Rerank {
		current, err := o.rankings.Current(ctx, opts.UserID, opts.JobID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			log.Printf("generation %s: reusing current ranking %s for job %s", doc.ID, current.ID, opts.JobID)
			o.applyOverrides(ctx, current, opts)
			return current, nil
		}
	}

	req := ranking.RankRequest{
		UserID:         opts.UserID,
		JobID:          job.ID,
		JobTitle:       job.Title,
		JobCompany:     job.Company,
		JobDescription: job.Description,
	}
	for _, e := range profile.Experiences {
		req.Experiences = append(req.Experiences, types.ExperienceItem(e))
	}
	for _, p := range profile.Projects {
		req.Projects = append(req.Projects, types.ProjectItem(p))
	}
	identity := types.IdentityRanking(opts.UserID, job.ID, profile)
	req.SkillCategories = identity.RankedSkillIDs

	result, err := o.ranker.Rank(ctx, req)
	if err != nil {
		return nil, err
	}
	result.ID = uuid.NewString()

	stored, err := o.rankings.Replace(ctx, result)
	if err != nil {
		return nil, err
	}
	o.applyOverrides(ctx, stored, opts)
	return stored, nil
}

// applyOverrides replaces ranked categories with caller-supplied orders and
// persists the modification.
func (o *Orchestrator) applyOverrides(ctx context.Context, result *types.RankingResult, opts Options) {
	overridden := false
	if opts.ExperienceOverride != nil {
		ranking.ApplyOverride(result, types.KindExperience, opts.ExperienceOverride)
		overridden = true
	}
	if opts.ProjectOverride != nil {
		ranking.ApplyOverride(result, types.KindProject, opts.ProjectOverride)
		overridden = true
	}
	if overridden {
		if _, err := o.rankings.Replace(ctx, result); err != nil {
			log.Printf("generation: failed to persist ranking override: %v", err)
		}
	}
}

// runEnhancement returns nil on any failure so assembly falls back to
// original text.
func (o *Orchestrator) runEnhancement(ctx context.Context, doc *types.GeneratedDocument, opts Options, rankResult *types.RankingResult, profile *types.Profile, job *types.Job) *types.EnhancementResult {
	req := enhancement.EnhanceRequest{
		JobTitle:    job.Title,
		JobCompany:  job.Company,
		JobKeywords: job.Keywords,
		Summary:     profile.Summary,
	}
	for _, id := range rankResult.RankedExperienceIDs {
		for _, e := range profile.Experiences {
			if e.ID == id {
				req.Experiences = append(req.Experiences, enhancement.TextItem{DurableID: e.ID, Text: e.Description})
			}
		}
	}
	for _, id := range rankResult.RankedProjectIDs {
		for _, p := range profile.Projects {
			if p.ID == id {
				req.Projects = append(req.Projects, enhancement.TextItem{DurableID: p.ID, Text: p.Description})
			}
		}
	}

	result, err := o.enhancer.Enhance(ctx, req)
	if err != nil {
		log.Printf("generation %s: enhancement failed, continuing with original text: %v", doc.ID, err)
		return nil
	}
	return result
}

// adoptCancellation re-reads the stored record and, when a concurrent Cancel
// has already marked it cancelled, copies the terminal state onto the run's
// document and emits the final event. Cancelled is terminal; the run never
// writes over it.
func (o *Orchestrator) adoptCancellation(ctx context.Context, doc *types.GeneratedDocument, opts Options) bool {
	stored, err := o.documents.Get(context.WithoutCancel(ctx), doc.ID)
	if err != nil || stored == nil || stored.Status != types.StatusCancelled {
		return false
	}
	doc.Status = types.StatusCancelled
	doc.CompletedAt = stored.CompletedAt
	o.emit(opts, doc, "generation cancelled")
	return true
}

// verifyEnhancement runs the numeric fact check over every enhanced text
// against its original, summary included, and renders one warning line per
// unsupported claim.
func verifyEnhancement(profile *types.Profile, enh *types.EnhancementResult) []string {
	originals := map[string]string{"summary": profile.Summary}
	for _, e := range profile.Experiences {
		originals[e.ID] = e.Description
	}
	for _, p := range profile.Projects {
		originals[p.ID] = p.Description
	}

	enhanced := make(map[string]string)
	if enh.EnhancedSummary != "" {
		enhanced["summary"] = enh.EnhancedSummary
	}
	for _, item := range enh.EnhancedExperiences {
		enhanced[item.DurableID] = item.EnhancedText
	}
	for _, item := range enh.EnhancedProjects {
		enhanced[item.DurableID] = item.EnhancedText
	}

	flags := enhancement.VerifyFacts(originals, &enhancement.EnhancePair{Enhanced: enhanced})
	warnings := make([]string, 0, len(flags))
	for _, flag := range flags {
		warnings = append(warnings, fmt.Sprintf("%s: claim %q is not supported by the original text", flag.DurableID, flag.Claim))
	}
	return warnings
}

// checkCancelled marks the document cancelled when the run's context has
// been cancelled before assembly, and honors a Cancel issued out of band.
// Returns true when the run should stop.
func (o *Orchestrator) checkCancelled(ctx context.Context, doc *types.GeneratedDocument, opts Options) bool {
	if o.adoptCancellation(ctx, doc, opts) {
		return true
	}
	if ctx.Err() == nil {
		return false
	}
	doc.Status = types.StatusCancelled
	completedAt := time.Now().UTC()
	doc.CompletedAt = &completedAt
	// Persist with a fresh context; the run's context is already dead.
	if err := o.documents.Update(context.WithoutCancel(ctx), doc); err != nil {
		log.Printf("generation %s: failed to record cancellation: %v", doc.ID, err)
	}
	o.emit(opts, doc, "generation cancelled")
	return true
}

// transition moves the document to a new status, stamps progress, persists
// the record and emits a progress event. When the stored record has been
// cancelled since the last write, the terminal state is adopted instead and
// false is returned so the caller stops the run.
func (o *Orchestrator) transition(ctx context.Context, doc *types.GeneratedDocument, opts Options, status types.DocumentStatus, stage string, progress int, message string) bool {
	if o.adoptCancellation(ctx, doc, opts) {
		return false
	}
	doc.Status = status
	doc.Stage = stage
	if progress > doc.Progress {
		doc.Progress = progress
	}
	if err := o.documents.Update(ctx, doc); err != nil {
		log.Printf("generation %s: failed to persist transition to %s: %v", doc.ID, status, err)
	}
	o.emit(opts, doc, message)
	return true
}

// fail records a fatal stage error and returns the document plus the wrapped
// error. Partial progress, such as a stored ranking, stays queryable so a
// retry does not repeat completed stages. A record already cancelled stays
// cancelled; the stage error is dropped.
func (o *Orchestrator) fail(ctx context.Context, doc *types.GeneratedDocument, opts Options, stage string, cause error) (*types.GeneratedDocument, error) {
	if o.adoptCancellation(ctx, doc, opts) {
		return doc, nil
	}
	wrapped := &OrchestrationError{Stage: stage, Message: "stage failed", Cause: cause}
	doc.Status = types.StatusFailed
	doc.Stage = stage
	doc.ErrorMessage = cause.Error()
	completedAt := time.Now().UTC()
	doc.CompletedAt = &completedAt
	if err := o.documents.Update(context.WithoutCancel(ctx), doc); err != nil {
		log.Printf("generation %s: failed to persist failure: %v", doc.ID, err)
	}
	return doc, wrapped
}

func (o *Orchestrator) emit(opts Options, doc *types.GeneratedDocument, message string) {
	if opts.OnProgress == nil {
		return
	}
	opts.OnProgress(ProgressEvent{
		DocumentID: doc.ID,
		Status:     doc.Status,
		Stage:      doc.Stage,
		Progress:   doc.Progress,
		Message:    message,
	})
}
