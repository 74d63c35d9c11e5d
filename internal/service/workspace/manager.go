package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	"github.com/go-chi/jwtauth/v5"
)

var ErrUnauthenticated = errors.New("user id missing from token claims")

// UserIDFromContext pulls the authenticated user id out of the JWT claims.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}

	return userID, nil
}

// Manager owns every user's in-memory workspace. All reads and writes are
// serialized behind one mutex, so a mutation is atomic from the caller's
// perspective and readers never observe a half-applied edit.
//
// The in-memory state is authoritative for the session. Durable writes go
// through the Persister with a short timeout; when the store is unreachable
// the operation still succeeds locally and the failure is only logged.
type Manager struct {
	mu      sync.Mutex
	repo    workspace.Repository
	logger  *slog.Logger
	timeout time.Duration
	states  map[string]*workspace.Workspace
}

func NewManager(repo workspace.Repository, logger *slog.Logger, storeTimeout time.Duration) *Manager {
	if storeTimeout <= 0 {
		storeTimeout = 3 * time.Second
	}
	return &Manager{
		repo:    repo,
		logger:  logger,
		timeout: storeTimeout,
		states:  make(map[string]*workspace.Workspace),
	}
}

// With resolves the caller's workspace and runs fn under the manager lock.
// The Persister is bound to the same user; fn uses it to flush whichever
// collections it mutated.
func (m *Manager) With(ctx context.Context, fn func(ws *workspace.Workspace, p *Persister) error) error {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.states[userID]
	if !ok {
		ws = m.load(ctx, userID)
		m.states[userID] = ws
	}

	return fn(ws, &Persister{m: m, ctx: ctx, userID: userID})
}

// load fetches the stored workspace. A load failure degrades to a blank
// workspace rather than blocking the user; they will see an empty report
// state and can re-upload.
func (m *Manager) load(ctx context.Context, userID string) *workspace.Workspace {
	loadCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ws, err := m.repo.Load(loadCtx, userID)
	if err != nil {
		m.logger.Warn("workspace load failed, starting from blank state",
			slog.String("user_id", userID), slog.Any("error", err))
		return workspace.New()
	}
	if ws == nil {
		return workspace.New()
	}
	return ws
}

// Persister flushes collections for one user. Every method is best-effort:
// the write runs under the store timeout and a failure is logged, never
// returned, because the business effect already happened in memory.
type Persister struct {
	m      *Manager
	ctx    context.Context
	userID string
}

func (p *Persister) save(collection string, fn func(ctx context.Context) error) {
	saveCtx, cancel := context.WithTimeout(p.ctx, p.m.timeout)
	defer cancel()

	if err := fn(saveCtx); err != nil {
		p.m.logger.Warn("durable save failed, keeping local state",
			slog.String("user_id", p.userID),
			slog.String("collection", collection),
			slog.Any("error", err))
	}
}

func (p *Persister) Report(ws *workspace.Workspace) {
	if ws.Report == nil {
		p.save("attendance_reports", func(ctx context.Context) error {
			return p.m.repo.ClearReports(ctx, p.userID)
		})
		return
	}
	p.save("attendance_reports", func(ctx context.Context) error {
		return p.m.repo.SaveReport(ctx, p.userID, ws.Report)
	})
}

func (p *Persister) ManualEmployees(ws *workspace.Workspace) {
	p.save("manual_users", func(ctx context.Context) error {
		return p.m.repo.SaveManualEmployees(ctx, p.userID, ws.ManualEmployees, ws.ManualDailyRecords)
	})
}

func (p *Persister) HourRates(ws *workspace.Workspace) {
	p.save("hour_rates", func(ctx context.Context) error {
		return p.m.repo.SaveHourRates(ctx, p.userID, ws.HourRates)
	})
}

func (p *Persister) Confirmed(ws *workspace.Workspace) {
	p.save("confirmed_salaries", func(ctx context.Context) error {
		return p.m.repo.SaveConfirmed(ctx, p.userID, ws.Confirmed)
	})
}

func (p *Persister) Finalized(ws *workspace.Workspace) {
	p.save("finalized_salaries", func(ctx context.Context) error {
		return p.m.repo.SaveFinalized(ctx, p.userID, ws.Finalized)
	})
}

func (p *Persister) Paid(ws *workspace.Workspace) {
	p.save("paid_employees", func(ctx context.Context) error {
		return p.m.repo.SavePaid(ctx, p.userID, ws.Paid)
	})
}
