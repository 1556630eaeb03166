package layers

import (
	"encoding/json"
	"testing"

	"github.com/akeil/sntool/internal/errors"
)

func TestParseName(t *testing.T) {
	for _, n := range All {
		parsed, err := ParseName(n.String())
		if err != nil {
			t.Errorf("failed to parse %q: %v", n, err)
		}
		if parsed != n {
			t.Errorf("unexpected layer name %v != %v", parsed, n)
		}
	}

	_, err := ParseName("LAYER4")
	if !errors.IsUnknownLayerRole(err) {
		t.Errorf("unknown layer role not detected: %v", err)
	}

	_, err = ParseName("mainlayer")
	if !errors.IsUnknownLayerRole(err) {
		t.Errorf("layer roles should be case sensitive")
	}
}

func TestParseSeq(t *testing.T) {
	seq, err := ParseSeq("BGLAYER,MAINLAYER, LAYER2")
	if err != nil {
		t.Fatal(err)
	}

	expected := []Name{BgLayer, MainLayer, Layer2}
	if len(seq) != len(expected) {
		t.Fatalf("unexpected length %d", len(seq))
	}
	for i := range expected {
		if seq[i] != expected[i] {
			t.Errorf("unexpected layer at %d: %v != %v", i, seq[i], expected[i])
		}
	}

	seq, err = ParseSeq("")
	if err != nil || len(seq) != 0 {
		t.Errorf("empty sequence should parse to no layers")
	}

	_, err = ParseSeq("MAINLAYER,TOPLAYER")
	if !errors.IsUnknownLayerRole(err) {
		t.Errorf("unknown layer role in sequence not detected: %v", err)
	}
}

func TestNameJSON(t *testing.T) {
	data, err := json.Marshal(Layer3)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"LAYER3"` {
		t.Errorf("unexpected JSON %s", data)
	}

	var n Name
	err = json.Unmarshal([]byte(`"BGLAYER"`), &n)
	if err != nil {
		t.Fatal(err)
	}
	if n != BgLayer {
		t.Errorf("unexpected layer name %v", n)
	}

	_, err = json.Marshal(Name(42))
	if err == nil {
		t.Errorf("invalid name should not marshal")
	}
}
