package reminder

import "testing"

func TestParse_MessageFirstGrammar(t *testing.T) {
	message, minutes, ok := Parse("remind me to call mom in 30 minutes")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if message != "call mom" {
		t.Errorf("message = %q, want %q", message, "call mom")
	}
	if minutes != 30 {
		t.Errorf("minutes = %d, want 30", minutes)
	}
}

func TestParse_DelayFirstGrammar(t *testing.T) {
	message, minutes, ok := Parse("remind me in 5 minutes to check email")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if message != "check email" {
		t.Errorf("message = %q, want %q", message, "check email")
	}
	if minutes != 5 {
		t.Errorf("minutes = %d, want 5", minutes)
	}
}

func TestParse_SingularMinute(t *testing.T) {
	if _, minutes, ok := Parse("remind me to stretch in 1 minute"); !ok || minutes != 1 {
		t.Errorf("singular unit should parse, got minutes=%d ok=%v", minutes, ok)
	}
}

func TestParse_NoDelay(t *testing.T) {
	message, minutes, ok := Parse("remind me to do something")
	if ok || message != "" || minutes != 0 {
		t.Errorf("expected no parse, got (%q, %d, %v)", message, minutes, ok)
	}
}

func TestParse_ZeroMinutes(t *testing.T) {
	if _, _, ok := Parse("remind me to nap in 0 minutes"); ok {
		t.Error("zero delay must not parse")
	}
}

func TestParse_Unrelated(t *testing.T) {
	if _, _, ok := Parse("what's the weather like"); ok {
		t.Error("unrelated text must not parse")
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	message, minutes, ok := Parse("Remind Me To water plants In 10 Minutes")
	if !ok || message != "water plants" || minutes != 10 {
		t.Errorf("case-insensitive parse failed: (%q, %d, %v)", message, minutes, ok)
	}
}
