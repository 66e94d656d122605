package eventmaster

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
)

// storage reads and writes board state in a directory. An empty dir keeps
// everything in memory.
type storage struct {
	dir string
}

func newStorage(dir string) *storage {
	return &storage{dir: dir}
}

func (s *storage) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *storage) persistent() bool {
	return s.dir != ""
}

func (s *storage) loadSchedule() (*events.Schedule, error) {
	if !s.persistent() {
		return nil, nil
	}
	path := s.path(constants.ScheduleFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var schedule events.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	if schedule.Events == nil {
		schedule.Events = []events.MergedEvent{}
	}
	return &schedule, nil
}

func (s *storage) saveSchedule(schedule *events.Schedule) error {
	if !s.persistent() {
		return nil
	}
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}

	data, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return errors.WrapParse("json", constants.ScheduleFile, err)
	}
	path := s.path(constants.ScheduleFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func (s *storage) removeSchedule() error {
	if !s.persistent() {
		return nil
	}
	path := s.path(constants.ScheduleFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}

func (s *storage) openAnnotations() (annotations.Store, error) {
	if !s.persistent() {
		return annotations.NewMemory(), nil
	}
	return annotations.NewFile(s.path(constants.AnnotationsFile))
}

func (s *storage) loadPreferences() (annotations.Preferences, error) {
	if !s.persistent() {
		return annotations.DefaultPreferences(), nil
	}
	return annotations.LoadPreferences(s.path(constants.PreferencesFile))
}

func (s *storage) savePreferences(p annotations.Preferences) error {
	if !s.persistent() {
		return nil
	}
	return annotations.SavePreferences(s.path(constants.PreferencesFile), p)
}
