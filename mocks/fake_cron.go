//+build !release

package mocks

import "sync"

type fakeCron struct {
	sync.Mutex
	jobs    map[int]func()
	specs   map[int]string
	nextID  int
	stopped bool
}

func (c *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	c.Lock()
	defer c.Unlock()
	c.nextID++
	c.jobs[c.nextID] = cmd
	c.specs[c.nextID] = spec
	return c.nextID, nil
}

func (c *fakeCron) RemoveFunc(id int) {
	c.Lock()
	defer c.Unlock()
	delete(c.jobs, id)
	delete(c.specs, id)
}

func (c *fakeCron) Stop() {
	c.Lock()
	defer c.Unlock()
	c.stopped = true
}

// Run invokes all registered jobs once.
func (c *fakeCron) Run() {
	c.Lock()
	jobs := make([]func(), 0, len(c.jobs))
	for _, v := range c.jobs {
		jobs = append(jobs, v)
	}
	c.Unlock()

	for _, v := range jobs {
		v()
	}
}

// Specs returns registered schedules.
func (c *fakeCron) Specs() []string {
	c.Lock()
	defer c.Unlock()
	s := make([]string, 0, len(c.specs))
	for _, v := range c.specs {
		s = append(s, v)
	}
	return s
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs:  make(map[int]func()),
		specs: make(map[int]string),
	}
}
