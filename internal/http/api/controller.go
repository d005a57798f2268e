package api

import "github.com/gin-gonic/gin"

// Controller wraps a gin group so modules register HandlerFuncs directly.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h))
}

func (c *Controller) POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

func (c *Controller) PUT(path string, h HandlerFunc) {
	c.Group.PUT(path, ResolveEndpoint(h))
}

func (c *Controller) DELETE(path string, h HandlerFunc) {
	c.Group.DELETE(path, ResolveEndpoint(h))
}

// Handle registers a raw gin handler, for endpoints that take over the
// connection such as websocket upgrades.
func (c *Controller) Handle(method, path string, h gin.HandlerFunc) {
	c.Group.Handle(method, path, h)
}
