package ports

import "testing"

func TestCameraIndex(t *testing.T) {
	tests := []struct {
		path   string
		index  int
		camera bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"0", 0, true},
		{"2", 2, true},
		{"-1", 0, false},
		{"clip.mp4", 0, false},
		{"/videos/1", 0, false},
	}

	for _, tt := range tests {
		index, camera := CameraIndex(tt.path)
		if index != tt.index || camera != tt.camera {
			t.Errorf("CameraIndex(%q) = %d, %v; want %d, %v", tt.path, index, camera, tt.index, tt.camera)
		}
	}
}
