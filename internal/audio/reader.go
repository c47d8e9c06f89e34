// Package audio decodes local audio files into mono sample buffers for the
// quick-scan analyzer. Decoding is bounded by a byte cap applied before the
// decoder runs, so very large files cost a fixed amount of memory and time;
// the resulting buffer is flagged as a truncated prefix when the cap bites.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// DefaultByteCap bounds how much of a file is read before decoding.
const DefaultByteCap = 64 << 20 // 64 MiB

// ErrDecode wraps any decoder failure. Callers treat it as opaque; retrying
// with different input is their decision.
var ErrDecode = errors.New("audio: decode failure")

// Buffer is a decoded mono sample buffer.
type Buffer struct {
	Samples    []float64 // mono, in [-1, 1]
	SampleRate int
	Truncated  bool // samples decoded from a size-capped prefix of the file
}

// DecodeFile reads at most byteCap bytes of the file (DefaultByteCap when
// byteCap <= 0) and decodes them into a mono buffer. Stereo input is
// collapsed by channel averaging. A decode error after the cap truncated the
// stream is expected and ends the decode; the prefix decoded so far is
// returned with Truncated set.
func DecodeFile(path string, byteCap int64) (*Buffer, error) {
	if byteCap <= 0 {
		byteCap = DefaultByteCap
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	truncated := info.Size() > byteCap

	data, err := io.ReadAll(io.LimitReader(f, byteCap))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var buf *Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		buf, err = decodeWAV(data, truncated)
	case ".mp3":
		buf, err = decodeMP3(data, truncated)
	case ".flac":
		buf, err = decodeFLAC(data, truncated)
	case ".ogg":
		buf, err = decodeOGG(data, truncated)
	default:
		return nil, fmt.Errorf("%w: unsupported container %q (quick scan decodes wav/mp3/flac/ogg)", ErrDecode, ext)
	}
	if err != nil {
		return nil, err
	}

	buf.Truncated = truncated
	return buf, nil
}

// acceptPartial decides whether a mid-stream decode error ends the decode
// cleanly. A capped read leaves a dangling final frame in every container;
// whatever decoded before it is the prefix we wanted.
func acceptPartial(err error, truncated bool, decoded int) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return truncated && decoded > 0
}

func decodeWAV(data []byte, truncated bool) (*Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrDecode)
	}

	channels := int(dec.NumChans)
	scale := float64(int(1) << (dec.BitDepth - 1))

	chunk := &gaudio.IntBuffer{
		Format: &gaudio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
		Data:   make([]int, 8192*channels),
	}

	var samples []float64
	for {
		n, err := dec.PCMBuffer(chunk)
		if n > 0 {
			samples = appendMono(samples, chunk.Data[:n], channels, scale)
		}
		if err != nil {
			if acceptPartial(err, truncated, len(samples)) {
				break
			}
			return nil, fmt.Errorf("%w: wav: %v", ErrDecode, err)
		}
		if n == 0 {
			break
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: wav: no samples decoded", ErrDecode)
	}
	return &Buffer{Samples: samples, SampleRate: int(dec.SampleRate)}, nil
}

func decodeMP3(data []byte, truncated bool) (*Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrDecode, err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	var samples []float64
	raw := make([]byte, 16384)
	for {
		n, err := dec.Read(raw)
		for i := 0; i+3 < n; i += 4 {
			l := float64(int16(uint16(raw[i]) | uint16(raw[i+1])<<8))
			r := float64(int16(uint16(raw[i+2]) | uint16(raw[i+3])<<8))
			samples = append(samples, (l+r)/2/32768.0)
		}
		if err != nil {
			if acceptPartial(err, truncated, len(samples)) {
				break
			}
			return nil, fmt.Errorf("%w: mp3: %v", ErrDecode, err)
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: mp3: no samples decoded", ErrDecode)
	}
	return &Buffer{Samples: samples, SampleRate: dec.SampleRate()}, nil
}

func decodeFLAC(data []byte, truncated bool) (*Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac: %v", ErrDecode, err)
	}

	channels := int(stream.Info.NChannels)
	scale := float64(int(1) << (stream.Info.BitsPerSample - 1))

	var samples []float64
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if acceptPartial(err, truncated, len(samples)) {
				break
			}
			return nil, fmt.Errorf("%w: flac: %v", ErrDecode, err)
		}

		n := int(frame.Subframes[0].NSamples)
		for i := 0; i < n; i++ {
			var sum float64
			for ch := 0; ch < channels; ch++ {
				sum += float64(frame.Subframes[ch].Samples[i]) / scale
			}
			samples = append(samples, clamp(sum/float64(channels)))
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: flac: no samples decoded", ErrDecode)
	}
	return &Buffer{Samples: samples, SampleRate: int(stream.Info.SampleRate)}, nil
}

func decodeOGG(data []byte, truncated bool) (*Buffer, error) {
	reader, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: ogg: %v", ErrDecode, err)
	}

	channels := reader.Channels()
	var samples []float64
	chunk := make([]float32, 8192*channels)
	for {
		n, err := reader.Read(chunk)
		for i := 0; i+channels <= n; i += channels {
			var sum float64
			for ch := 0; ch < channels; ch++ {
				sum += float64(chunk[i+ch])
			}
			samples = append(samples, clamp(sum/float64(channels)))
		}
		if err != nil {
			if acceptPartial(err, truncated, len(samples)) {
				break
			}
			return nil, fmt.Errorf("%w: ogg: %v", ErrDecode, err)
		}
		if n == 0 {
			break
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: ogg: no samples decoded", ErrDecode)
	}
	return &Buffer{Samples: samples, SampleRate: reader.SampleRate()}, nil
}

// appendMono converts interleaved integer PCM to mono float64 and appends it.
func appendMono(dst []float64, pcm []int, channels int, scale float64) []float64 {
	for i := 0; i+channels <= len(pcm); i += channels {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(pcm[i+ch]) / scale
		}
		dst = append(dst, clamp(sum/float64(channels)))
	}
	return dst
}

func clamp(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}
