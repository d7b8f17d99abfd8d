package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
)

// ActivityResourceIDKey lets a create handler report the id it assigned.
const ActivityResourceIDKey = "activityResourceID"

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps admin URL segments to resource types
var pathToResourceType = map[string]string{
	"produkty":   models.ResourceTypeProduct,
	"kategorie":  models.ResourceTypeCategory,
	"producenci": models.ResourceTypeManufacturer,
	"zamowienia": models.ResourceTypeOrder,
	"tresci":     models.ResourceTypeContent,
	"wiadomosci": models.ResourceTypeContactMessage,
}

// resourceTypeToNameField maps resource types to their name field
var resourceTypeToNameField = map[string]string{
	models.ResourceTypeProduct:        "name",
	models.ResourceTypeCategory:       "name",
	models.ResourceTypeManufacturer:   "name",
	models.ResourceTypeOrder:          "order_number",
	models.ResourceTypeContent:        "key",
	models.ResourceTypeContactMessage: "email",
}

var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// Writes that change nothing worth auditing.
var skipSegments = map[string]bool{
	"upload-signature": true,
}

// ResourceLoader fetches the current state of a resource for the before/after
// snapshot. It returns nil when the resource does not exist.
type ResourceLoader func(ctx context.Context, resourceType, id string) any

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware logs admin writes with a before/after snapshot.
// Must be used after AdminAuthMiddleware.
func ActivityLoggingMiddleware(svc *services.ActivityLogService, load ResourceLoader, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("activity")
	return func(c *gin.Context) {
		actionVerb, ok := methodToActionVerb[c.Request.Method]
		if !ok {
			c.Next()
			return
		}

		adminID, ok := GetAdminID(c)
		if !ok {
			logger.Warn("admin info not in context")
			c.Next()
			return
		}
		adminEmail := GetAdminEmail(c)

		resourceType, skip := extractResourceType(c.Request.URL.Path)
		if skip {
			c.Next()
			return
		}
		if resourceType == "" {
			logger.Debug("no resource type for path", zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.Param("key")
		}
		action := actionVerb + "_" + resourceType

		ctx, cancel := config.RequestTimeout(c.Request.Context())
		defer cancel()

		var before any
		if c.Request.Method != http.MethodPost && resourceID != "" {
			before = load(ctx, resourceType, resourceID)
		}
		resourceName := extractResourceName(resourceType, before)

		c.Next()

		req := services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if req.ResourceID == "" {
				req.ResourceID = c.GetString(ActivityResourceIDKey)
			}
			var after any
			if req.ResourceID != "" && c.Request.Method != http.MethodDelete {
				after = load(ctx, resourceType, req.ResourceID)
			}
			if name := extractResourceName(resourceType, after); name != "" {
				req.ResourceName = name
			}
			req.Changes = services.CreateChanges(before, after)
			req.Status = models.StatusSuccess
		} else {
			req.Status = models.StatusFailed
			req.ErrorMessage = "Request failed with status " + strconv.Itoa(status) + " " + http.StatusText(status)
		}

		svc.LogActivity(ctx, req)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// extractResourceType finds the resource segment of an admin path, e.g.
// "/api/admin/zamowienia/<uuid>/status" → "order".
func extractResourceType(path string) (resourceType string, skip bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if skipSegments[parts[i]] {
			return "", true
		}
		if rt, ok := pathToResourceType[parts[i]]; ok {
			return rt, false
		}
	}
	return "", false
}

// extractResourceName extracts the name/identifier from a resource object
func extractResourceName(resourceType string, obj any) string {
	if obj == nil {
		return ""
	}
	field := resourceTypeToNameField[resourceType]
	if field == "" {
		return ""
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}

	switch v := m[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
