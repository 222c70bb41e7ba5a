package tools

import (
	"careerchat/app/service/leads"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakePusher struct {
	pushed []string
}

func (f *fakePusher) Push(_ context.Context, text string) {
	f.pushed = append(f.pushed, text)
}

type fakeStore struct {
	leads     []leads.Lead
	questions []leads.UnknownQuestion
	fail      bool
}

func (f *fakeStore) AddLead(email, name, notes string) (*leads.Lead, error) {
	if f.fail {
		return nil, errors.New("disk full")
	}
	lead := leads.Lead{ID: "lead-1", Email: email, Name: name, Notes: notes}
	f.leads = append(f.leads, lead)
	return &lead, nil
}

func (f *fakeStore) AddQuestion(question string) (*leads.UnknownQuestion, error) {
	if f.fail {
		return nil, errors.New("disk full")
	}
	item := leads.UnknownQuestion{ID: "q-1", Question: question}
	f.questions = append(f.questions, item)
	return &item, nil
}

func TestDispatchRecordUserDetails(t *testing.T) {
	push := &fakePusher{}
	store := &fakeStore{}
	s := newService(push, store)

	result := s.Dispatch(context.Background(), ToolRecordUserDetails,
		`{"email":"x@y.com","name":"Visitor","notes":"wants to chat"}`)

	if result != `{"recorded":true}` {
		t.Errorf("unexpected result: %s", result)
	}
	if len(store.leads) != 1 || store.leads[0].Email != "x@y.com" {
		t.Errorf("lead not stored: %+v", store.leads)
	}
	if len(push.pushed) != 1 || !strings.Contains(push.pushed[0], "x@y.com") {
		t.Errorf("notification not sent: %v", push.pushed)
	}
}

func TestDispatchRecordUserDetailsDefaults(t *testing.T) {
	store := &fakeStore{}
	s := newService(&fakePusher{}, store)

	s.Dispatch(context.Background(), ToolRecordUserDetails, `{"email":"x@y.com"}`)

	if len(store.leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(store.leads))
	}
	if store.leads[0].Name != "Name not provided" || store.leads[0].Notes != "Notes not provided" {
		t.Errorf("missing defaults: %+v", store.leads[0])
	}
}

func TestDispatchRecordUnknownQuestion(t *testing.T) {
	push := &fakePusher{}
	store := &fakeStore{}
	s := newService(push, store)

	result := s.Dispatch(context.Background(), ToolRecordUnknownQuestion,
		`{"question":"What is your favourite color?"}`)

	if result != `{"recorded":true}` {
		t.Errorf("unexpected result: %s", result)
	}
	if len(store.questions) != 1 {
		t.Errorf("question not stored: %+v", store.questions)
	}
	if len(push.pushed) != 1 || !strings.Contains(push.pushed[0], "favourite color") {
		t.Errorf("notification not sent: %v", push.pushed)
	}
}

func TestDispatchValidation(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		arguments string
	}{
		{name: "missing email", tool: ToolRecordUserDetails, arguments: `{"name":"Visitor"}`},
		{name: "malformed json", tool: ToolRecordUserDetails, arguments: `{"email":`},
		{name: "missing question", tool: ToolRecordUnknownQuestion, arguments: `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newService(&fakePusher{}, &fakeStore{})

			result := s.Dispatch(context.Background(), tc.tool, tc.arguments)

			if !strings.Contains(result, `"error"`) {
				t.Errorf("expected synthetic error result, got %s", result)
			}
		})
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	s := newService(&fakePusher{}, &fakeStore{})

	result := s.Dispatch(context.Background(), "open_pod_bay_doors", `{}`)

	if !strings.Contains(result, "unknown tool: open_pod_bay_doors") {
		t.Errorf("unexpected result: %s", result)
	}
}

func TestDispatchInvalidEmailFormatStillRecords(t *testing.T) {
	store := &fakeStore{}
	s := newService(&fakePusher{}, store)

	result := s.Dispatch(context.Background(), ToolRecordUserDetails, `{"email":"not-an-email"}`)

	if result != `{"recorded":true}` {
		t.Errorf("best-effort validation should still record, got %s", result)
	}
	if len(store.leads) != 1 {
		t.Errorf("lead not stored: %+v", store.leads)
	}
}

func TestDispatchStoreFailureKeepsAck(t *testing.T) {
	push := &fakePusher{}
	s := newService(push, &fakeStore{fail: true})

	result := s.Dispatch(context.Background(), ToolRecordUserDetails, `{"email":"x@y.com"}`)

	if result != `{"recorded":true}` {
		t.Errorf("store failure must not change the acknowledgment, got %s", result)
	}
	if len(push.pushed) != 1 {
		t.Errorf("notification should still go out: %v", push.pushed)
	}
}

func TestDefinitionsMatchRegistry(t *testing.T) {
	s := newService(&fakePusher{}, &fakeStore{})

	defs := s.Definitions()
	if len(defs) != len(s.registry) {
		t.Fatalf("expected %d definitions, got %d", len(s.registry), len(defs))
	}

	for _, def := range defs {
		if _, ok := s.registry[def.Function.Name]; !ok {
			t.Errorf("definition %q has no registered tool", def.Function.Name)
		}
	}
}
