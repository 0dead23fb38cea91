package main

import (
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "window"
	prefsProperty = "geometry"
)

// windowPrefs is the window state remembered between runs. Animation state
// is deliberately not persisted; every run starts at progress 0.
type windowPrefs struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
}

// prefsStore wraps a gdata manager. A nil manager degrades to in-memory
// prefs, so the demo still runs where platform storage is unavailable.
type prefsStore struct {
	manager *gdata.Manager
	current windowPrefs
}

func openPrefsStore(defaults windowPrefs) *prefsStore {
	s := &prefsStore{current: defaults}
	m, err := gdata.Open(gdata.Config{AppName: "glitchmorph_showcase"})
	if err != nil {
		log.Printf("showcase: window prefs disabled: %v", err)
		return s
	}
	s.manager = m
	s.load()
	return s
}

func (s *prefsStore) load() {
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		log.Printf("showcase: load window prefs: %v", err)
		return
	}
	var p windowPrefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		log.Printf("showcase: parse window prefs: %v", err)
		return
	}
	if p.Width > 0 && p.Height > 0 {
		s.current = p
	}
}

// save writes the prefs if they changed since the last save.
func (s *prefsStore) save(p windowPrefs) {
	if s.manager == nil || p == s.current {
		return
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		log.Printf("showcase: encode window prefs: %v", err)
		return
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		log.Printf("showcase: save window prefs: %v", err)
		return
	}
	s.current = p
}
