package services

import "sync"

// SessionManager hands out one SearchOrchestrator per user so the HTTP
// layer can keep a cursor alive across requests. The factory receives the
// user id so each session gets its own viewed set and filter.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*SearchOrchestrator
	factory  func(userID string) *SearchOrchestrator
}

// NewSessionManager creates a manager that builds orchestrators on demand
func NewSessionManager(factory func(userID string) *SearchOrchestrator) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*SearchOrchestrator),
		factory:  factory,
	}
}

// ForUser returns the user's orchestrator, creating it on first use
func (sm *SessionManager) ForUser(userID string) *SearchOrchestrator {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if orchestrator, ok := sm.sessions[userID]; ok {
		return orchestrator
	}
	orchestrator := sm.factory(userID)
	sm.sessions[userID] = orchestrator
	return orchestrator
}

// EndSession drops a user's orchestrator, releasing its cursor state
func (sm *SessionManager) EndSession(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}
