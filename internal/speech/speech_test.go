package speech

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pricofy/video-releases-skill/internal/domain"
)

func TestBuildSpeechletResponse(t *testing.T) {
	got := BuildSpeechletResponse("Welcome", "Hello there", "Still there?", false)
	want := domain.SpeechletResponse{
		OutputSpeech: domain.OutputSpeech{Type: "PlainText", Text: "Hello there"},
		Card:         domain.Card{Type: "Simple", Title: "Prime Video - Welcome", Content: "Hello there"},
		Reprompt: &domain.Reprompt{
			OutputSpeech: domain.OutputSpeech{Type: "PlainText", Text: "Still there?"},
		},
		ShouldEndSession: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSpeechletResponse() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSpeechletResponse_NoReprompt(t *testing.T) {
	got := BuildSpeechletResponse("New Releases", "Done", "", true)
	if got.Reprompt != nil {
		t.Errorf("Reprompt = %+v, want nil", got.Reprompt)
	}
	if !got.ShouldEndSession {
		t.Error("ShouldEndSession = false, want true")
	}
}

func TestBuildResponse(t *testing.T) {
	r := BuildSpeechletResponse("t", "o", "", true)

	env := BuildResponse(nil, r)
	if env.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", env.Version)
	}
	if env.SessionAttributes == nil || len(env.SessionAttributes) != 0 {
		t.Errorf("SessionAttributes = %v, want empty map", env.SessionAttributes)
	}

	attrs := map[string]any{"lastIntent": "GetNewReleases"}
	env = BuildResponse(attrs, r)
	if env.SessionAttributes["lastIntent"] != "GetNewReleases" {
		t.Errorf("SessionAttributes not carried through: %v", env.SessionAttributes)
	}
}

func TestBuildResponse_JSONShape(t *testing.T) {
	env := BuildResponse(nil, BuildSpeechletResponse("Welcome", "Hi", "Again?", false))
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"version":"1.0","sessionAttributes":{},"response":{` +
		`"outputSpeech":{"type":"PlainText","text":"Hi"},` +
		`"card":{"type":"Simple","title":"Prime Video - Welcome","content":"Hi"},` +
		`"reprompt":{"outputSpeech":{"type":"PlainText","text":"Again?"}},` +
		`"shouldEndSession":false}}`
	if string(raw) != want {
		t.Errorf("envelope JSON =\n%s\nwant\n%s", raw, want)
	}
}

func TestBuildResponse_Deterministic(t *testing.T) {
	build := func() []byte {
		raw, err := json.Marshal(BuildResponse(map[string]any{"a": 1, "b": "two"},
			BuildSpeechletResponse("New Releases", NewReleasesText([]string{"X", "Y"}), "", true)))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return raw
	}

	first := build()
	for i := 0; i < 10; i++ {
		if got := build(); string(got) != string(first) {
			t.Fatalf("run %d produced different bytes:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestNewReleasesText(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{
			name:   "nil titles",
			titles: nil,
			want:   "Here are the latest releases to Amazon Video: ",
		},
		{
			name:   "empty titles",
			titles: []string{},
			want:   "Here are the latest releases to Amazon Video: ",
		},
		{
			name:   "single title",
			titles: []string{"Arrival"},
			want:   "Here are the latest releases to Amazon Video: Arrival. ",
		},
		{
			name:   "order preserved",
			titles: []string{"Manchester by the Sea", "Moonlight", "La La Land"},
			want:   "Here are the latest releases to Amazon Video: Manchester by the Sea. Moonlight. La La Land. ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewReleasesText(tt.titles); got != tt.want {
				t.Errorf("NewReleasesText(%q) = %q, want %q", tt.titles, got, tt.want)
			}
		})
	}
}

func TestCannedResponses(t *testing.T) {
	tests := []struct {
		name       string
		env        *domain.Envelope
		text       string
		cardTitle  string
		reprompt   string
		endSession bool
	}{
		{
			name:       "welcome",
			env:        Welcome(),
			text:       WelcomeText,
			cardTitle:  "Prime Video - Welcome",
			reprompt:   WelcomeReprompt,
			endSession: false,
		},
		{
			name:       "new releases",
			env:        NewReleases([]string{"Arrival"}),
			text:       NewReleasesPrefix + "Arrival. ",
			cardTitle:  "Prime Video - New Releases",
			endSession: true,
		},
		{
			name:       "fetch failed",
			env:        FetchFailed(),
			text:       FetchApology,
			cardTitle:  "Prime Video - New Releases",
			endSession: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.env.Response
			if r.OutputSpeech.Text != tt.text {
				t.Errorf("text = %q, want %q", r.OutputSpeech.Text, tt.text)
			}
			if r.Card.Title != tt.cardTitle {
				t.Errorf("card title = %q, want %q", r.Card.Title, tt.cardTitle)
			}
			if r.Card.Content != tt.text {
				t.Errorf("card content = %q, want %q", r.Card.Content, tt.text)
			}
			if r.ShouldEndSession != tt.endSession {
				t.Errorf("shouldEndSession = %v, want %v", r.ShouldEndSession, tt.endSession)
			}
			gotReprompt := ""
			if r.Reprompt != nil {
				gotReprompt = r.Reprompt.OutputSpeech.Text
			}
			if gotReprompt != tt.reprompt {
				t.Errorf("reprompt = %q, want %q", gotReprompt, tt.reprompt)
			}
		})
	}
}
