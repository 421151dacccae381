// Package probe reads MP4/MOV container metadata with mp4ff.
package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/harview/pkg/ports"
)

var (
	// ErrUnsupported is returned for containers other than ISO BMFF.
	ErrUnsupported = errors.New("probe: unsupported container")

	// ErrNoVideoTrack is returned when the file has no video track.
	ErrNoVideoTrack = errors.New("probe: no video track found")
)

// Codec names reported in MediaInfo.Codec.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecVP9     = "vp9"
	CodecMPEG4   = "mpeg4"
	CodecUnknown = "unknown"
)

// Prober implements ports.Prober.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Supported reports whether path has an extension the prober understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// Probe reads the metadata of the file at path.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	if !Supported(path) {
		return ports.MediaInfo{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := FromReader(f)
	if err != nil {
		return info, err
	}
	if strings.EqualFold(filepath.Ext(path), ".mov") {
		info.Container = "mov"
	}
	return info, nil
}

// FromReader reads metadata from an MP4 stream.
func FromReader(r io.ReadSeeker) (ports.MediaInfo, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	var traks []*mp4.TrakBox
	if file.IsFragmented() && file.Init != nil && file.Init.Moov != nil {
		traks = append(traks, file.Init.Moov.Traks...)
	}
	if file.Moov != nil {
		traks = append(traks, file.Moov.Traks...)
	}

	for _, trak := range traks {
		if info, ok := videoTrack(trak); ok {
			info.Container = "mp4"
			return info, nil
		}
	}
	return ports.MediaInfo{}, ErrNoVideoTrack
}

func videoTrack(trak *mp4.TrakBox) (ports.MediaInfo, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return ports.MediaInfo{}, false
	}

	info := ports.MediaInfo{Codec: CodecUnknown}

	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.DurationMs = int(mdhd.Duration * 1000 / uint64(mdhd.Timescale))
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return info, true
	}
	stbl := trak.Mdia.Minf.Stbl

	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			if codec := codecName(child.Type()); codec != CodecUnknown {
				info.Codec = codec
				break
			}
		}
	}

	return info, true
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	case "mp4v":
		return CodecMPEG4
	default:
		return CodecUnknown
	}
}

var _ ports.Prober = (*Prober)(nil)
