package todo

import (
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		word string
		want Action
	}{
		{"pick", ActionPick},
		{"p", ActionPick},
		{"PICK", ActionPick},
		{"reword", ActionReword},
		{"r", ActionReword},
		{"edit", ActionEdit},
		{"e", ActionEdit},
		{"squash", ActionSquash},
		{"s", ActionSquash},
		{"fixup", ActionFixup},
		{"f", ActionFixup},
		{"drop", ActionDrop},
		{"d", ActionDrop},
		{"exec", ActionExec},
		{"x", ActionExec},
		{"break", ActionBreak},
		{"b", ActionBreak},
		{"label", ActionLabel},
		{"l", ActionLabel},
		{"reset", ActionReset},
		{"t", ActionReset},
		{"merge", ActionMerge},
		{"m", ActionMerge},
		{"noop", ActionNoop},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.word)
		if err != nil {
			t.Errorf("ParseAction(%q) error = %v", tt.word, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestParseActionUnknown(t *testing.T) {
	_, err := ParseAction("frobnicate")
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ParseAction(frobnicate) error = %v, want ErrUnknownAction", err)
	}
}

func TestCanChangeTo(t *testing.T) {
	tests := []struct {
		from, to Action
		want     bool
	}{
		{ActionPick, ActionDrop, true},
		{ActionSquash, ActionFixup, true},
		{ActionBreak, ActionPick, false},
		{ActionNoop, ActionDrop, false},
		{ActionExec, ActionPick, false},
		{ActionPick, ActionExec, false},
		{ActionLabel, ActionReset, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanChangeTo(tt.to); got != tt.want {
			t.Errorf("%v.CanChangeTo(%v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		action    Action
		reference string
		option    string
		content   string
	}{
		{"pick", "pick aaa111 Add feature", ActionPick, "aaa111", "", "Add feature"},
		{"abbreviated", "s bbb222 Squash me", ActionSquash, "bbb222", "", "Squash me"},
		{"no subject", "drop ccc333", ActionDrop, "ccc333", "", ""},
		{"fixup option", "fixup -C ddd444 Amend message", ActionFixup, "ddd444", "-C", "Amend message"},
		{"exec", "exec make test && echo ok", ActionExec, "", "", "make test && echo ok"},
		{"label", "label onto", ActionLabel, "onto", "", ""},
		{"reset with comment", "reset onto # Branch one", ActionReset, "onto", "", "# Branch one"},
		{"merge", "merge -C eee555 topic # Merge topic", ActionMerge, "", "", "-C eee555 topic # Merge topic"},
		{"break", "break", ActionBreak, "", "", ""},
		{"noop", "noop", ActionNoop, "", "", ""},
		{"carriage return", "pick fff666 Windows\r", ActionPick, "fff666", "", "Windows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ParseLine(tt.text)
			if err != nil {
				t.Fatalf("ParseLine(%q) error = %v", tt.text, err)
			}
			if line.Action() != tt.action {
				t.Errorf("Action() = %v, want %v", line.Action(), tt.action)
			}
			if line.Reference() != tt.reference {
				t.Errorf("Reference() = %q, want %q", line.Reference(), tt.reference)
			}
			if line.Option() != tt.option {
				t.Errorf("Option() = %q, want %q", line.Option(), tt.option)
			}
			if line.Content() != tt.content {
				t.Errorf("Content() = %q, want %q", line.Content(), tt.content)
			}
			if line.String() != tt.text {
				t.Errorf("String() = %q, want %q", line.String(), tt.text)
			}
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{"unknown aaa111 subject", ErrUnknownAction},
		{"pick", ErrInvalidLine},
		{"exec", ErrInvalidLine},
		{"label", ErrInvalidLine},
		{"merge", ErrInvalidLine},
	}

	for _, tt := range tests {
		if _, err := ParseLine(tt.text); !errors.Is(err, tt.want) {
			t.Errorf("ParseLine(%q) error = %v, want %v", tt.text, err, tt.want)
		}
	}
}

func TestLineStringAfterChange(t *testing.T) {
	line, err := ParseLine("p aaa111 Subject")
	if err != nil {
		t.Fatalf("ParseLine error = %v", err)
	}
	if !line.setAction(ActionReword) {
		t.Fatal("setAction(reword) = false, want true")
	}
	if got, want := line.String(), "reword aaa111 Subject"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	fixup, _ := ParseLine("fixup -c bbb222 Subject")
	fixup.setAction(ActionPick)
	if got, want := fixup.String(), "pick bbb222 Subject"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewEditableLine(t *testing.T) {
	tests := []struct {
		action Action
		text   string
		want   string
	}{
		{ActionExec, "go test ./...", "exec go test ./..."},
		{ActionLabel, "topic", "label topic"},
		{ActionReset, "onto # base", "reset onto # base"},
		{ActionMerge, "-C abc topic", "merge -C abc topic"},
	}

	for _, tt := range tests {
		line := NewEditableLine(tt.action, tt.text)
		if got := line.String(); got != tt.want {
			t.Errorf("NewEditableLine(%v, %q).String() = %q, want %q", tt.action, tt.text, got, tt.want)
		}
		if got := line.EditableText(); got != tt.text {
			t.Errorf("EditableText() = %q, want %q", got, tt.text)
		}
	}
}
