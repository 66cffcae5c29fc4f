package mocks

// MockRegistrationThrottle implements domain.RegistrationThrottle for testing
type MockRegistrationThrottle struct {
	TryRegisterFunc func(addr string) error
	Calls           []string
}

// NewMockRegistrationThrottle creates a new MockRegistrationThrottle with default behaviors
func NewMockRegistrationThrottle() *MockRegistrationThrottle {
	return &MockRegistrationThrottle{}
}

// TryRegister records the call and consults the configured behavior
func (m *MockRegistrationThrottle) TryRegister(addr string) error {
	m.Calls = append(m.Calls, addr)
	if m.TryRegisterFunc != nil {
		return m.TryRegisterFunc(addr)
	}
	// Default behavior: quota available
	return nil
}

// Stop is a no-op
func (m *MockRegistrationThrottle) Stop() {}
