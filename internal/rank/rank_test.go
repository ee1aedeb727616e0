package rank

import "testing"

func TestTokenRank_AllTermsRequired(t *testing.T) {
	text := "wireless charging pad with fast charging support"

	if got := TokenRank("wireless pad", text); got <= 0 {
		t.Fatalf("expected positive rank for present terms, got %f", got)
	}
	if got := TokenRank("wireless bluetooth", text); got != 0 {
		t.Fatalf("expected 0 when a term is absent, got %f", got)
	}
}

func TestTokenRank_EmptyInputs(t *testing.T) {
	if got := TokenRank("", "some text"); got != 0 {
		t.Errorf("empty query should rank 0, got %f", got)
	}
	if got := TokenRank("query", ""); got != 0 {
		t.Errorf("empty text should rank 0, got %f", got)
	}
}

func TestTokenRank_FrequencyRaisesScore(t *testing.T) {
	once := TokenRank("phone", "the phone is on the table near the window sill")
	twice := TokenRank("phone", "the phone is on the table near the phone dock")
	if twice <= once {
		t.Errorf("higher term frequency should rank higher: once=%f twice=%f", once, twice)
	}
}

func TestTokenRank_LengthNormalization(t *testing.T) {
	short := TokenRank("phone", "phone case")
	long := TokenRank("phone",
		"phone accessories come in many shapes and sizes including cases "+
			"chargers cables stands holders mounts and screen protectors")
	if long >= short {
		t.Errorf("longer text should be penalized: short=%f long=%f", short, long)
	}
}

func TestPhraseRank_RequiresContiguousMatch(t *testing.T) {
	scattered := "wireless headphones and a charging station"
	contiguous := "a wireless charging pad for phones"

	if got := PhraseRank("wireless charging", scattered); got != 0 {
		t.Errorf("scattered terms should not phrase-match, got %f", got)
	}
	if got := PhraseRank("wireless charging", contiguous); got <= 0 {
		t.Errorf("expected positive phrase rank, got %f", got)
	}
}

func TestPhraseRank_OutranksTokenRank(t *testing.T) {
	text := "portable wireless charging pad with usb port"
	phrase := PhraseRank("wireless charging", text)
	token := TokenRank("wireless charging", text)
	if phrase <= token {
		t.Errorf("phrase rank %f should exceed token rank %f on an exact phrase hit", phrase, token)
	}
}

func TestSubstringFallback(t *testing.T) {
	tests := []struct {
		name                      string
		query, content, title, fn string
		want                      float64
	}{
		{"content hit", "charging", "wireless charging pad", "", "", SubstringScore},
		{"title hit", "manual", "unrelated body", "User Manual", "", SubstringScore},
		{"filename hit", "invoice", "unrelated body", "", "invoice-2024.pdf", SubstringScore},
		{"case insensitive", "CHARGING", "wireless Charging pad", "", "", SubstringScore},
		{"no hit", "bluetooth", "wireless charging pad", "title", "file.pdf", 0},
		{"blank query", "   ", "anything", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubstringFallback(tt.query, tt.content, tt.title, tt.fn); got != tt.want {
				t.Errorf("SubstringFallback = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScore_MaxOfSignals(t *testing.T) {
	// Substring fallback hits (0.5) while the token rank is well below it,
	// so the blended score must be exactly the fallback.
	text := "the quarterly report mentions wireless initiatives across " +
		"several departments and regions with varying degrees of adoption"
	score := Score("wireless initiatives", text, "", "report.pdf")
	if score < SubstringScore {
		t.Errorf("score %f should be at least the substring fallback", score)
	}
}

func TestScore_PhraseDocOutranksScatteredDoc(t *testing.T) {
	phraseDoc := "our new wireless charging pad ships this quarter"
	scatteredDoc := "wireless headsets need no charging cable at the desk"

	a := Score("wireless charging", phraseDoc, "", "")
	b := Score("wireless charging", scatteredDoc, "", "")
	if a < b {
		t.Errorf("phrase document %f should not rank below scattered document %f", a, b)
	}
}

func TestScore_NoMatchIsZero(t *testing.T) {
	if got := Score("bluetooth", "wireless charging pad", "Pad", "pad.pdf"); got != 0 {
		t.Errorf("expected 0 for a non-matching candidate, got %f", got)
	}
}

func TestProductMatch(t *testing.T) {
	if !ProductMatch("wireless", "Wireless Charging Pad") {
		t.Error("expected name substring to match")
	}
	if ProductMatch("wireless", "Bluetooth Speaker") {
		t.Error("non-matching name should be excluded")
	}
	if ProductMatch("", "Wireless Charging Pad") {
		t.Error("empty query should never match")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Wireless-Charging_Pad 2.0!")
	want := []string{"wireless", "charging", "pad", "2", "0"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
