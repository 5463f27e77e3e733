package event

import "testing"

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"command.done", "command.done", true},
		{"command.done", "command.*", true},
		{"command.done", "*.done", true},
		{"command.done", "**", true},
		{"command.done", "command.**", true},
		{"command.done", "buffer.*", false},
		{"command.done", "command", false},
		{"command.done", "command.done.extra", false},
		{"buffer.content.inserted", "buffer.*", false},
		{"buffer.content.inserted", "buffer.**", true},
		{"buffer.switched", "buffer.*", true},
		{"command.done", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic)+"/"+string(tt.pattern), func(t *testing.T) {
			if got := tt.topic.Match(tt.pattern); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestTopicSegments(t *testing.T) {
	if segs := Topic("a.b.c").Segments(); len(segs) != 3 {
		t.Errorf("Segments() = %v, want 3 segments", segs)
	}
	if segs := Topic("").Segments(); segs != nil {
		t.Errorf("Segments() on empty topic = %v, want nil", segs)
	}
}
