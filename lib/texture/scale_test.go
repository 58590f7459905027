package texture

import (
	"math/rand"
	"testing"
)

func TestResizeSameSize(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	g := randomGray(r, 16, 16)
	out, err := ResizeGray(g, 16)
	if err != nil {
		t.Fatal(err)
	}
	if out != g {
		t.Error("ResizeGray resampled an image that already had the target size")
	}
	c := randomRGB(r, 16, 16)
	cout, err := ResizeRGB(c, 16)
	if err != nil {
		t.Fatal(err)
	}
	if cout != c {
		t.Error("ResizeRGB resampled an image that already had the target size")
	}
}

func TestResize(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, sz := range []int{1, 8, 32} {
		g, err := ResizeGray(randomGray(r, 16, 16), sz)
		if err != nil {
			t.Fatal(err)
		}
		if g.Rect.Dx() != sz || g.Rect.Dy() != sz {
			t.Errorf("gray size %d: got %v", sz, g.Rect)
		}
		c, err := ResizeRGB(randomRGB(r, 16, 16), sz)
		if err != nil {
			t.Fatal(err)
		}
		if c.Rect.Dx() != sz || c.Rect.Dy() != sz {
			t.Errorf("rgb size %d: got %v", sz, c.Rect)
		}
		for i := 3; i < len(c.Pix); i += 4 {
			if c.Pix[i] != 0xff {
				t.Fatalf("rgb size %d: pixel %d is not opaque", sz, i/4)
			}
		}
	}
	if _, err := ResizeGray(Uniform(4, 0), 0); err == nil {
		t.Error("ResizeGray to size 0 succeeded")
	}
}

func TestResizeUniform(t *testing.T) {
	out, err := ResizeGray(Uniform(64, 200), 16)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Pix {
		if v != 200 {
			t.Fatalf("pixel %d = %d, want 200", i, v)
		}
	}
}
