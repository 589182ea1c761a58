// Package pcap turns packet captures into multivariate traffic series by
// aggregating packets over fixed time intervals. Each interval yields one
// row: [packet count, total bytes, mean packet size, tcp share], a series
// shape the window detectors consume directly.
package pcap

import (
	"errors"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// DefaultInterval is the aggregation bucket width.
const DefaultInterval = time.Second

// Reader reads packets from a PCAP file and aggregates them into a series.
type Reader struct {
	handle   *pcap.Handle
	interval time.Duration
}

// Option configures a Reader.
type Option func(*Reader)

// WithInterval sets the aggregation bucket width.
func WithInterval(d time.Duration) Option {
	return func(r *Reader) {
		r.interval = d
	}
}

// NewFileReader creates a reader for PCAP files.
func NewFileReader(filename string, opts ...Option) (*Reader, error) {
	handle, err := pcap.OpenOffline(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		handle:   handle,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.interval <= 0 {
		handle.Close()
		return nil, errors.New("interval must be positive")
	}
	return r, nil
}

// Read consumes the capture and returns one row per interval between the
// first and last packet, intervals without traffic included as zero rows.
func (r *Reader) Read() ([][]float64, error) {
	if r.handle == nil {
		return nil, errors.New("reader not initialized")
	}

	var samples []packetSample
	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		md := packet.Metadata()
		if md == nil || md.Timestamp.IsZero() {
			continue
		}
		samples = append(samples, packetSample{
			ts:   md.Timestamp,
			size: len(packet.Data()),
			tcp:  packet.Layer(layers.LayerTypeTCP) != nil,
		})
	}

	return aggregate(samples, r.interval), nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.handle != nil {
		r.handle.Close()
	}
	return nil
}

// FeatureNames returns the column names of the aggregated series.
func FeatureNames() []string {
	return []string{"packet_count", "total_bytes", "mean_size", "tcp_share"}
}

type packetSample struct {
	ts   time.Time
	size int
	tcp  bool
}

type bucket struct {
	count int
	bytes int
	tcp   int
}

// aggregate buckets samples by timestamp into interval-wide rows. Gaps
// between active intervals are filled with zero rows so the series stays
// evenly spaced.
func aggregate(samples []packetSample, interval time.Duration) [][]float64 {
	if len(samples) == 0 {
		return nil
	}

	buckets := make(map[int64]*bucket)
	first := samples[0].ts.UnixNano() / int64(interval)
	last := first
	for _, s := range samples {
		idx := s.ts.UnixNano() / int64(interval)
		if idx < first {
			first = idx
		}
		if idx > last {
			last = idx
		}
		b := buckets[idx]
		if b == nil {
			b = &bucket{}
			buckets[idx] = b
		}
		b.count++
		b.bytes += s.size
		if s.tcp {
			b.tcp++
		}
	}

	rows := make([][]float64, 0, last-first+1)
	for idx := first; idx <= last; idx++ {
		b := buckets[idx]
		if b == nil {
			rows = append(rows, []float64{0, 0, 0, 0})
			continue
		}
		rows = append(rows, []float64{
			float64(b.count),
			float64(b.bytes),
			float64(b.bytes) / float64(b.count),
			float64(b.tcp) / float64(b.count),
		})
	}
	return rows
}
