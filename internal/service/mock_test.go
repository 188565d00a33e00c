package service

import (
	"context"
	"sync"

	"github.com/freeeve/principled-summit/internal/advisor"
	"github.com/freeeve/principled-summit/internal/model"
	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// stubAdvisor returns canned results and records what it was asked.
type stubAdvisor struct {
	judgeVerdict negotiation.Verdict
	judgeErr     error
	judgeCalls   int

	detection   negotiation.Detection
	detectErr   error
	detectCalls int

	response     advisor.Response
	respondErr   error
	respondCalls int
	lastRequest  advisor.ResponseRequest
}

func (a *stubAdvisor) Judge(_ context.Context, _ []negotiation.ChatMessage, _ string) (negotiation.Verdict, error) {
	a.judgeCalls++
	return a.judgeVerdict, a.judgeErr
}

func (a *stubAdvisor) DetectConcession(_ context.Context, _ string, _ negotiation.Persona) (negotiation.Detection, error) {
	a.detectCalls++
	return a.detection, a.detectErr
}

func (a *stubAdvisor) Respond(_ context.Context, req advisor.ResponseRequest) (advisor.Response, error) {
	a.respondCalls++
	a.lastRequest = req
	return a.response, a.respondErr
}

// recordingBroadcaster captures session events in order.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) BroadcastSessionEvent(_ string, eventType string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
}

func (b *recordingBroadcaster) has(eventType string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.events {
		if e == eventType {
			return true
		}
	}
	return false
}

// stubArchive records concluded agreements in memory.
type stubArchive struct {
	mu      sync.Mutex
	records []*model.AgreementRecord
	err     error
}

func (a *stubArchive) Record(_ context.Context, rec *model.AgreementRecord) error {
	if a.err != nil {
		return a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return nil
}

func (a *stubArchive) List(_ context.Context, _ int) ([]model.AgreementRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.AgreementRecord, len(a.records))
	for i, r := range a.records {
		out[i] = *r
	}
	return out, nil
}
