package blockhuffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
)

func frameHeader(stats *Statistics, lengths ...int32) []byte {
	var buf bytes.Buffer
	_, _ = stats.WriteTo(&buf)
	_ = binary.Write(&buf, binary.BigEndian, int32(len(lengths)))
	for _, length := range lengths {
		_ = binary.Write(&buf, binary.BigEndian, length)
	}
	return buf.Bytes()
}

func TestEncode_AAAB(t *testing.T) {
	input := []byte{0x41, 0x41, 0x41, 0x42}

	type testRow struct {
		name    string
		n       int
		lengths []int32
		blocks  []byte
	}
	testData := [...]testRow{
		{"one-block", 1, []int32{1}, []byte{0xe0}},
		{"two-blocks", 2, []int32{1, 1}, []byte{0xc0, 0x80}},
		{"more-blocks-than-bytes", 6, []int32{1, 1, 1, 1, 0, 0}, []byte{0x80, 0x80, 0x80, 0x00}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			frame, contentBits, err := EncodeBytes(input, row.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if contentBits != 4 {
				t.Errorf("expected 4 content bits, got %d", contentBits)
			}

			expect := append(frameHeader(Analyse(input), row.lengths...), row.blocks...)
			if !bytes.Equal(expect, frame) {
				t.Errorf("wrong frame:\n\texpect: %#v\n\tactual: %#v", expect[StatisticsSize:], frame[StatisticsSize:])
			}

			output, err := DecodeBytes(frame)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(input, output) {
				t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", input, output)
			}
		})
	}
}

func TestEncode_SingleSymbol(t *testing.T) {
	input := bytes.Repeat([]byte{'k'}, 1000)
	frame, contentBits, err := EncodeBytes(input, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentBits != 0 {
		t.Errorf("expected 0 content bits, got %d", contentBits)
	}
	if expect := frameHeader(Analyse(input), 0, 0, 0); !bytes.Equal(expect, frame) {
		t.Errorf("wrong frame: %#v", frame[StatisticsSize:])
	}

	output, err := DecodeBytes(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(input, output) {
		t.Errorf("expected 1000 × 'k', got %d bytes", len(output))
	}
}

func TestEncode_Empty(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		frame, contentBits, err := EncodeBytes(nil, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if contentBits != 0 {
			t.Errorf("n=%d: expected 0 content bits, got %d", n, contentBits)
		}
		if !bytes.Equal(make([]byte, StatisticsSize), frame[:StatisticsSize]) {
			t.Errorf("n=%d: expected 256 zero counts", n)
		}
		if expect := StatisticsSize + 4 + 4*n; len(frame) != expect {
			t.Errorf("n=%d: expected %d byte frame, got %d", n, expect, len(frame))
		}

		output, err := DecodeBytes(frame)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(output) != 0 {
			t.Errorf("n=%d: expected no output, got %d bytes", n, len(output))
		}
	}
}

func testCorpora() map[string][]byte {
	rng := rand.New(rand.NewSource(42))

	uniform := make([]byte, 5000)
	rng.Read(uniform)

	skewed := make([]byte, 5000)
	for i := range skewed {
		skewed[i] = byte(rng.ExpFloat64() * 4)
	}

	return map[string][]byte{
		"empty":   {},
		"one":     {0x7f},
		"two":     {0x00, 0xff},
		"aaab":    []byte("AAAB"),
		"text":    []byte(strings.Repeat("It was the best of times, it was the worst of times. ", 40)),
		"uniform": uniform,
		"skewed":  skewed,
		"runs":    append(bytes.Repeat([]byte{1}, 300), bytes.Repeat([]byte{2}, 7)...),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, input := range testCorpora() {
		for _, n := range []int{1, 2, 3, 4, 7, 16, 100} {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				frame, contentBits, err := EncodeBytes(input, n)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				tree := Analyse(input).ToForest().ToTree()
				expectBits := tree.CodeTable().WeightedLength(Analyse(input))
				if uint64(contentBits) != expectBits {
					t.Errorf("expected %d content bits, got %d", expectBits, contentBits)
				}

				output, err := DecodeBytes(frame)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !bytes.Equal(input, output) {
					t.Errorf("round trip changed %d bytes into %d bytes", len(input), len(output))
				}
			})
		}
	}
}

func TestRoundTrip_Options(t *testing.T) {
	input := testCorpora()["text"]

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var e Encoder
	if err := e.Init(Options{Workers: 1, Logger: logger}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var frame bytes.Buffer
	if _, err := e.Encode(&frame, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := int32(binary.BigEndian.Uint32(frame.Bytes()[StatisticsSize:]))
	if count != DefaultBlockCount {
		t.Errorf("expected %d blocks by default, got %d", DefaultBlockCount, count)
	}

	var d Decoder
	if err := d.Init(Options{Workers: 2, Logger: logger}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var output bytes.Buffer
	if err := d.Decode(&output, &frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(input, output.Bytes()) {
		t.Errorf("round trip changed the input")
	}

	logs := logBuf.String()
	for _, expect := range []string{"encoded frame", "decoded frame", "blocks=4", fmt.Sprintf("bytes=%d", len(input))} {
		if !strings.Contains(logs, expect) {
			t.Errorf("expected log output to contain %q, got:\n%s", expect, logs)
		}
	}
}

func TestOptions_Invalid(t *testing.T) {
	testData := []Options{
		{BlockCount: -1},
		{Workers: -1},
		{MaxDecodedSize: -1},
	}
	for _, opts := range testData {
		var e Encoder
		if err := e.Init(opts); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Encoder.Init(%+v): expected ErrInvalidArgument, got %v", opts, err)
		}
		var d Decoder
		if err := d.Init(opts); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Decoder.Init(%+v): expected ErrInvalidArgument, got %v", opts, err)
		}
	}
}

func TestEncode_InvalidArguments(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, _, err := EncodeBytes([]byte("abc"), n); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("n=%d: expected ErrInvalidArgument, got %v", n, err)
		}
	}
	if _, err := Encode(nil, []byte("abc"), 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil writer, got %v", err)
	}
	if err := Decode(nil, bytes.NewReader(nil)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil writer, got %v", err)
	}
	if err := Decode(&bytes.Buffer{}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil reader, got %v", err)
	}
}

func TestEncode_BrokenWriter(t *testing.T) {
	if _, err := Encode(&failingByteWriter{}, []byte("abc"), 2); !errors.Is(err, errBroken) {
		t.Errorf("expected errBroken, got %v", err)
	}

	frame, _, err := EncodeBytes([]byte("abc"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Decode(&failingByteWriter{}, bytes.NewReader(frame)); !errors.Is(err, errBroken) {
		t.Errorf("expected errBroken, got %v", err)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	aaab := Analyse([]byte("AAAB"))
	good := append(frameHeader(aaab, 1, 1), 0xc0, 0x80)

	var huge Statistics
	huge.counts['A'] = 1 << 62
	huge.counts['B'] = 1 << 62

	var hugeSingle Statistics
	hugeSingle.counts['A'] = 1 << 62

	var largeSingle Statistics
	largeSingle.counts['A'] = DefaultMaxDecodedSize + 1

	type testRow struct {
		name   string
		frame  []byte
		expect error
	}
	testData := [...]testRow{
		{"nothing", nil, ErrCorruptInput},
		{"short-statistics", good[:StatisticsSize-3], ErrCorruptInput},
		{"no-block-count", good[:StatisticsSize], ErrCorruptInput},
		{"short-block-count", good[:StatisticsSize+2], ErrCorruptInput},
		{"zero-blocks", frameHeader(aaab), ErrCorruptInput},
		{"negative-length", append(frameHeader(aaab, -1, 1), 0xc0, 0x80), ErrCorruptInput},
		{"missing-length", good[:StatisticsSize+6], ErrCorruptInput},
		{"short-block", good[:len(good)-1], ErrCorruptInput},
		{"trailing-data", append(append([]byte(nil), good...), 0x00), ErrCorruptInput},
		{"too-few-bits", append(frameHeader(aaab, 0, 2), 0xc0, 0x80), ErrCorruptInput},
		{"too-many-symbols", append(frameHeader(&huge, 1), 0x00), ErrCorruptInput},
		{"single-symbol-huge-count", frameHeader(&hugeSingle, 0), ErrSizeLimit},
		{"single-symbol-over-default-limit", frameHeader(&largeSingle, 0, 0), ErrSizeLimit},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Decode(&out, bytes.NewReader(row.frame))
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %d bytes", out.Len())
			}
		})
	}

	if output, err := DecodeBytes(good); err != nil || string(output) != "AAAB" {
		t.Errorf("control frame failed: %q %v", output, err)
	}
}

func TestDecode_BlockFailure(t *testing.T) {
	// five equally likely symbols take at least 2 bits each; 8 bits cannot
	// hold 5 of them
	stats := Analyse([]byte("abcde"))
	frame := append(frameHeader(stats, 1), 0x00)

	var out bytes.Buffer
	err := Decode(&out, bytes.NewReader(frame))

	var blockErr *BlockError
	if !errors.As(err, &blockErr) {
		t.Fatalf("expected *BlockError, got %v", err)
	}
	if blockErr.Op != "decode" || blockErr.Index != 0 {
		t.Errorf("wrong block error: %+v", blockErr)
	}
	if !errors.Is(err, ErrCorruptInput) {
		t.Errorf("expected ErrCorruptInput, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %d bytes", out.Len())
	}
}

func TestDecode_SizeLimit(t *testing.T) {
	frame, _, err := EncodeBytes(bytes.Repeat([]byte("ab"), 50), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var d Decoder
	if err := d.Init(Options{MaxDecodedSize: 99}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Decode(&bytes.Buffer{}, bytes.NewReader(frame)); !errors.Is(err, ErrSizeLimit) {
		t.Errorf("expected ErrSizeLimit, got %v", err)
	}

	if err := d.Init(Options{MaxDecodedSize: 100}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Decode(&bytes.Buffer{}, bytes.NewReader(frame)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
