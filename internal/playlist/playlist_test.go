//nolint:goconst // test file with repeated string literals
package playlist

import "testing"

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Tracks() == nil {
		t.Error("Tracks() should return empty slice, not nil")
	}
}

func TestNewTrack(t *testing.T) {
	tests := []struct {
		base string
		name string
		want string
	}{
		{"/music", "a.mp3", "/music/a.mp3"},
		{"/music/", "a.mp3", "/music/a.mp3"},
		{"", "a.mp3", "a.mp3"},
	}
	for _, tt := range tests {
		got := NewTrack(tt.base, tt.name)
		if got.Path != tt.want {
			t.Errorf("NewTrack(%q, %q).Path = %q, want %q", tt.base, tt.name, got.Path, tt.want)
		}
		if got.Name != tt.name {
			t.Errorf("NewTrack(%q, %q).Name = %q, want %q", tt.base, tt.name, got.Name, tt.name)
		}
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := NewPlaylist()

	p.Add(Track{Name: "a.mp3"}, Track{Name: "b.mp3"})

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	tracks := p.Tracks()
	if tracks[0].Name != "a.mp3" {
		t.Errorf("tracks[0].Name = %q, want a.mp3", tracks[0].Name)
	}
	if tracks[1].Name != "b.mp3" {
		t.Errorf("tracks[1].Name = %q, want b.mp3", tracks[1].Name)
	}
}

func TestPlaylist_Clear(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Name: "a.mp3"}, Track{Name: "b.mp3"})

	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestPlaylist_Track(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Name: "a.mp3"}, Track{Name: "b.mp3"})

	if tr := p.Track(1); tr == nil || tr.Name != "b.mp3" {
		t.Errorf("Track(1) = %v, want b.mp3", tr)
	}
	if p.Track(-1) != nil {
		t.Error("Track(-1) should be nil")
	}
	if p.Track(2) != nil {
		t.Error("Track(2) should be nil")
	}
}

func TestPlaylist_Tracks_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Name: "a.mp3"})

	tracks := p.Tracks()
	tracks[0].Name = "changed"

	if p.Track(0).Name != "a.mp3" {
		t.Error("modifying Tracks() result should not affect playlist")
	}
}

func TestPlaylist_IndexOf(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Name: "a.mp3"}, Track{Name: "b.mp3"}, Track{Name: "a.mp3"})

	if got := p.IndexOf("a.mp3"); got != 0 {
		t.Errorf("IndexOf(a.mp3) = %d, want 0 (first occurrence)", got)
	}
	if got := p.IndexOf("b.mp3"); got != 1 {
		t.Errorf("IndexOf(b.mp3) = %d, want 1", got)
	}
	if got := p.IndexOf("c.mp3"); got != -1 {
		t.Errorf("IndexOf(c.mp3) = %d, want -1", got)
	}
}
