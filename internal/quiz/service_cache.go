package quiz

// Cache-specific helpers are isolated here so service.go can focus on orchestration.
// Quizzes are immutable once stored, so entries only leave the cache on delete.

func (s *Service) getCachedQuiz(owner, quizID string) (Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.quizCache[quizCacheKey(owner, quizID)]
	return cached, ok
}

func (s *Service) setCachedQuiz(q Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quizCache[quizCacheKey(q.Owner, q.ID)] = q
}

func (s *Service) dropCachedQuiz(owner, quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.quizCache, quizCacheKey(owner, quizID))
}

func quizCacheKey(owner, quizID string) string {
	return owner + "::" + quizID
}
