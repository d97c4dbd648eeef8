// Package api exposes the roast calculation over HTTP using gin.
//
// Routes:
//   - POST   /calculate         raw stage inputs → phase results (422 on invalid input)
//   - GET    /defaults          remembered Yellowing / First Crack temperatures
//   - PUT    /defaults/:stage   remember a temperature
//   - DELETE /defaults/:stage   forget a temperature
//   - GET    /version
package api
