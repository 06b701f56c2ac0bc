package ai

import "testing"

func TestTextVectorLength(t *testing.T) {
	vec := TextVector("hello world")
	if len(vec) != VectorDim {
		t.Fatalf("len = %d, want %d", len(vec), VectorDim)
	}
}

func TestTextVectorEmpty(t *testing.T) {
	vec := TextVector("")
	if len(vec) != VectorDim {
		t.Fatalf("len = %d, want %d", len(vec), VectorDim)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("bucket %d = %v, want 0", i, v)
		}
	}
}

func TestTextVectorDeterministic(t *testing.T) {
	a := TextVector("the same input")
	b := TextVector("the same input")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bucket %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTextVectorCaseInsensitive(t *testing.T) {
	a := TextVector("Hello World")
	b := TextVector("hello world")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bucket %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTextVectorKnownBuckets(t *testing.T) {
	// "ab" lands 'a' (97) in bucket 0 and 'b' (98) in bucket 1.
	vec := TextVector("ab")
	if vec[0] != 97.0/1000 {
		t.Errorf("bucket 0 = %v, want %v", vec[0], 97.0/1000)
	}
	if vec[1] != 98.0/1000 {
		t.Errorf("bucket 1 = %v, want %v", vec[1], 98.0/1000)
	}
	for i := 2; i < VectorDim; i++ {
		if vec[i] != 0 {
			t.Fatalf("bucket %d = %v, want 0", i, vec[i])
		}
	}
}

func TestTextVectorWrapsAroundDimension(t *testing.T) {
	// 101 'a' runes: bucket 0 accumulates the 1st and the 101st rune.
	input := make([]rune, VectorDim+1)
	for i := range input {
		input[i] = 'a'
	}
	vec := TextVector(string(input))
	if want := 2 * 97.0 / 1000; vec[0] != want {
		t.Errorf("bucket 0 = %v, want %v", vec[0], want)
	}
	if want := 97.0 / 1000; vec[1] != want {
		t.Errorf("bucket 1 = %v, want %v", vec[1], want)
	}
}

func TestTextVectorCountsRunesNotBytes(t *testing.T) {
	// 'é' is two bytes but one rune; it must fill exactly one bucket.
	vec := TextVector("é")
	if want := float64('é') / 1000; vec[0] != want {
		t.Errorf("bucket 0 = %v, want %v", vec[0], want)
	}
	if vec[1] != 0 {
		t.Errorf("bucket 1 = %v, want 0", vec[1])
	}
}
