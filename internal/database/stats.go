package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStat is the part of *pgxpool.Stat the collector reads.
type poolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
	MaxConns() int32
	EmptyAcquireCount() int64
}

// PoolCollector exports connection pool gauges at scrape time.
type PoolCollector struct {
	stat func() poolStat

	acquired     *prometheus.Desc
	idle         *prometheus.Desc
	total        *prometheus.Desc
	max          *prometheus.Desc
	emptyAcquire *prometheus.Desc
}

func NewPoolCollector(pool *pgxpool.Pool) *PoolCollector {
	return newPoolCollector(func() poolStat { return pool.Stat() })
}

func newPoolCollector(stat func() poolStat) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("microstartup", "db_pool", name), help, nil, nil)
	}
	return &PoolCollector{
		stat:         stat,
		acquired:     desc("acquired_connections", "Connections currently checked out."),
		idle:         desc("idle_connections", "Idle connections in the pool."),
		total:        desc("total_connections", "All open connections."),
		max:          desc("max_connections", "Configured pool ceiling."),
		emptyAcquire: desc("empty_acquire_total", "Acquires that had to wait for a connection."),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.emptyAcquire
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.emptyAcquire, prometheus.CounterValue, float64(s.EmptyAcquireCount()))
}
