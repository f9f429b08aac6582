package content

import (
	"sync"
	"time"

	"github.com/fwojciec/brief"
)

// TranscriptSession tracks transcript acquisition for one page context.
// At most one acquisition may be active; a second one fails fast.
//
// TranscriptSession is safe for concurrent use.
type TranscriptSession struct {
	mu sync.Mutex

	// videoID is the last video confirmed loaded.
	videoID string

	// current is the video the page last navigated to.
	current string

	active        bool
	generation    uint64
	lastAttemptAt time.Time

	now func() time.Time
}

// NewTranscriptSession returns an idle session.
func NewTranscriptSession() *TranscriptSession {
	return &TranscriptSession{now: time.Now}
}

// Begin marks an acquisition active and returns the function that releases
// it. Returns EINPROGRESS if an acquisition is already active.
//
// A release issued after Navigated has reset the session is a no-op.
func (s *TranscriptSession) Begin() (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil, brief.Errorf(brief.EINPROGRESS, "Already getting transcript, please wait")
	}
	s.active = true
	s.lastAttemptAt = s.now()
	gen := s.generation

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation == gen {
				s.active = false
			}
		})
	}, nil
}

// Active reports whether an acquisition is in flight.
func (s *TranscriptSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Confirmed reports whether videoID has already been seen fully loaded.
func (s *TranscriptSession) Confirmed(videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return videoID != "" && s.videoID == videoID
}

// Confirm records videoID as loaded.
func (s *TranscriptSession) Confirm(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoID = videoID
	s.current = videoID
}

// VideoID returns the last confirmed video.
func (s *TranscriptSession) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

// LastAttemptAt returns when the last acquisition began.
func (s *TranscriptSession) LastAttemptAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAttemptAt
}

// Navigated records the video the page is showing and resets the session
// if the page moved there from another video. The new video must then be
// waited for again and any in-flight acquisition loses its claim.
// Returns false if videoID is empty, unchanged, or the first one seen.
func (s *TranscriptSession) Navigated(videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if videoID == "" || videoID == s.current {
		return false
	}
	first := s.current == ""
	s.current = videoID
	if first {
		return false
	}
	s.videoID = ""
	s.active = false
	s.generation++
	return true
}
