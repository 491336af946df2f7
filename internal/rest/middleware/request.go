package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/chestno/chestno/internal/types"
)

func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// TenantContextMiddleware resolves the tenant, user and environment for the
// request from headers, falling back to the single-tenant defaults.
func TenantContextMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID := c.GetHeader(types.HeaderTenantID)
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}

	userID := c.GetHeader(types.HeaderUserID)
	if userID == "" {
		userID = types.DefaultUserID
	}

	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, userID)

	if environmentID := c.GetHeader(types.HeaderEnvironmentID); environmentID != "" {
		ctx = context.WithValue(ctx, types.CtxEnvironmentID, environmentID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
