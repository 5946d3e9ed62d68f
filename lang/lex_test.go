package lang

import (
	"reflect"
	"testing"
)

func tokenTypes(tokens []token) []tokenType {
	types := make([]tokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.typ
	}
	return types
}

func TestLex(t *testing.T) {
	tests := []struct {
		input string
		want  []tokenType
	}{
		{"start", []tokenType{typeIdentifier, typeEOF}},
		{"set cv1 clock_mod /16", []tokenType{typeIdentifier, typeIdentifier, typeIdentifier, typeIdentifier, typeEOF}},
		{"set cv2 quant 'Nat Maj'", []tokenType{typeIdentifier, typeIdentifier, typeIdentifier, typeString, typeEOF}},
		{"set clock bpm 120", []tokenType{typeIdentifier, typeIdentifier, typeIdentifier, typeInt, typeEOF}},
		{"render out.wav 120 4", []tokenType{typeIdentifier, typeIdentifier, typeInt, typeInt, typeEOF}},
		{"x 0.5 -3 -.25", []tokenType{typeIdentifier, typeFloat, typeInt, typeFloat, typeEOF}},
		{"save patches/live.json", []tokenType{typeIdentifier, typeIdentifier, typeEOF}},
	}
	for _, test := range tests {
		tokens, err := lex(test.input)
		if err != nil {
			t.Errorf("lex(%q): %v", test.input, err)
			continue
		}
		if got := tokenTypes(tokens); !reflect.DeepEqual(test.want, got) {
			t.Errorf("lex(%q): want %v, got %v", test.input, test.want, got)
		}
	}
}

func TestLexText(t *testing.T) {
	tokens, err := lex("set cv1 wave Squ")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"set", "cv1", "wave", "Squ", ""}
	for i, token := range tokens {
		if token.text != want[i] {
			t.Errorf("token %d: want %q, got %q", i, want[i], token.text)
		}
	}
}

func TestLexErrors(t *testing.T) {
	for _, input := range []string{
		"set cv1 skip 5%",
		"'unterminated",
		"set cv1 wave $qu",
	} {
		if _, err := lex(input); err == nil {
			t.Errorf("lex(%q): want error", input)
		}
	}
}
