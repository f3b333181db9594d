// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields: set the field for the method under test and the
// mock calls it, otherwise a fixed default is returned.
//
//	svc := &mocks.MockActivityService{
//	    HomeActivitiesFn: func(ctx context.Context) (json.RawMessage, error) {
//	        return json.RawMessage(`[{"uuid":"..."}]`), nil
//	    },
//	}
package mocks
