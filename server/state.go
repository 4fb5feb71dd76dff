package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems"
)

// Ping limit of a single house.
const pingTimeout = 10 * time.Second

// HouseStatus describes availability of the house control plane.
type HouseStatus struct {
	Name        string    `json:"name"`
	Available   bool      `json:"available"`
	LastChecked time.Time `json:"lastChecked"`
}

// Periodically probes houses.
type houseMonitor struct {
	sync.RWMutex
	logger   common.ILoggerProvider
	cron     providers.ICronProvider
	spec     string
	houses   map[string]*providers.House
	statuses map[string]*HouseStatus
	now      func() time.Time
}

// Constructs a new house monitor.
func newHouseMonitor(settings providers.ISettingsProvider) *houseMonitor {
	m := &houseMonitor{
		logger:   settings.ComponentLogger(systems.SysHouse, "monitor"),
		cron:     settings.Cron(),
		spec:     settings.MasterSettings().MonitorInterval,
		houses:   settings.Houses(),
		statuses: make(map[string]*HouseStatus),
		now:      time.Now,
	}

	for k := range m.houses {
		m.statuses[k] = &HouseStatus{Name: k}
	}

	return m
}

// Start schedules periodic checks.
func (m *houseMonitor) Start() error {
	if "" == m.spec {
		m.spec = "@every 1m"
	}

	_, err := m.cron.AddFunc(m.spec, m.Check)
	return err
}

// Check pings every house concurrently.
func (m *houseMonitor) Check() {
	var wg sync.WaitGroup
	for k, v := range m.houses {
		wg.Add(1)
		go func(name string, house *providers.House) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			defer cancel()

			err := house.Devices.Ping(ctx)
			if err != nil {
				m.logger.Warn("House is unavailable", common.LogHouseToken, name,
					common.LogErrorToken, err.Error())
			}

			m.Lock()
			m.statuses[name] = &HouseStatus{Name: name, Available: nil == err, LastChecked: m.now()}
			m.Unlock()
		}(k, v)
	}

	wg.Wait()
}

// Statuses returns houses sorted by name.
func (m *houseMonitor) Statuses() []*HouseStatus {
	m.RLock()
	defer m.RUnlock()

	result := make([]*HouseStatus, 0, len(m.statuses))
	for _, v := range m.statuses {
		s := *v
		result = append(result, &s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
