package texture

import "testing"

func TestDetectConvention(t *testing.T) {
	cases := []struct {
		name string
		want Convention
	}{
		{"rock_normal.png", DirectX},
		{"Rock_Normal_OpenGL.png", OpenGL},
		{"/textures/rock_normalGL.png", DirectX},
		{"rock_n_gl.png", OpenGL},
		{"rock-nrm-ogl.tif", OpenGL},
		{"rock_Normal_DirectX.png", DirectX},
		{"rock_normal_dx.png", DirectX},
		{"T_Rock_N.png", DirectX},
		{"glass_normal.png", DirectX},
	}
	for _, c := range cases {
		if got := DetectConvention(c.name); got != c.want {
			t.Errorf("DetectConvention(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestConventionSet(t *testing.T) {
	cases := []struct {
		in   string
		want Convention
	}{
		{"auto", UnknownConvention},
		{"directx", DirectX},
		{"DX", DirectX},
		{"OpenGL", OpenGL},
		{"gl", OpenGL},
	}
	for _, c := range cases {
		var v Convention
		if err := v.Set(c.in); err != nil {
			t.Errorf("Set(%q): %v", c.in, err)
			continue
		}
		if v != c.want {
			t.Errorf("Set(%q) = %v, want %v", c.in, v, c.want)
		}
	}
	var v Convention
	if err := v.Set("vulkan"); err == nil {
		t.Error(`Set("vulkan") succeeded`)
	}
}
