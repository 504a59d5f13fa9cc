package shmring

import "testing"

func TestOrderAcrossWrapWithPartialProgress(t *testing.T) {
	r := New(64)

	const N = 2000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 0, N)
	tmp := make([]byte, 5)

	p := src
	for len(dst) < N {
		if len(p) > 0 {
			step := 7
			if step > len(p) {
				step = len(p)
			}
			p = p[r.WriteFrom(p[:step]):]
		}
		n := r.ReadInto(tmp)
		dst = append(dst, tmp[:n]...)
	}
	for i := range src {
		if src[i] != dst[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, dst[i], src[i])
		}
	}
}

func TestFullAndEmpty(t *testing.T) {
	r := New(4)
	if n := r.WriteFrom([]byte{1, 2, 3, 4, 5}); n != 4 {
		t.Fatalf("WriteFrom = %d, want 4", n)
	}
	if r.Space() != 0 || r.Available() != 4 {
		t.Fatalf("space=%d avail=%d, want 0/4", r.Space(), r.Available())
	}
	if n := r.WriteFrom([]byte{9}); n != 0 {
		t.Fatalf("WriteFrom on full ring = %d, want 0", n)
	}
	for want := byte(1); want <= 4; want++ {
		b, ok := r.ReadByte()
		if !ok || b != want {
			t.Fatalf("ReadByte = %d,%v want %d,true", b, ok, want)
		}
	}
	if _, ok := r.ReadByte(); ok {
		t.Fatalf("ReadByte on empty ring should fail")
	}
}

func TestReadableEdge(t *testing.T) {
	r := New(8)
	r.WriteFrom([]byte{1})
	select {
	case <-r.Readable():
	default:
		t.Fatalf("expected readable edge after first write")
	}
	r.WriteFrom([]byte{2})
	select {
	case <-r.Readable():
		t.Fatalf("no edge expected while non-empty")
	default:
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non power-of-two size")
		}
	}()
	_ = New(6)
}
