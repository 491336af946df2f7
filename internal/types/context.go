package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxEnvironmentID ContextKey = "ctx_environment_id"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// Default values
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
)

// HTTP headers carrying request identity
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderTenantID      = "X-Tenant-ID"
	HeaderUserID        = "X-User-ID"
	HeaderEnvironmentID = "X-Environment-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(CtxTenantID).(string); ok {
		return tenantID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetEnvironmentID(ctx context.Context) string {
	if environmentID, ok := ctx.Value(CtxEnvironmentID).(string); ok {
		return environmentID
	}
	return ""
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetEnvironmentID sets the environment ID in the context
func SetEnvironmentID(ctx context.Context, environmentID string) context.Context {
	return context.WithValue(ctx, CtxEnvironmentID, environmentID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	tenantID := GetTenantID(ctx)
	if tenantID == "" {
		return fmt.Errorf("no tenant context found in context")
	}

	return nil
}
