// Package docs Doleances Backend API.
//
// Backend de la plateforme de doléances: référentiel administratif de Madagascar
// (régions, districts, communes), recherche de lieux combinant ce référentiel et
// Nominatim, dépôt de doléances avec pièce jointe PDF, relais du chatbot et de
// l'inscription vers n8n.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//
//	Security:
//	- cookie_auth:
//
//	SecurityDefinitions:
//	cookie_auth:
//	     type: apiKey
//	     name: auth-token
//	     in: cookie
//
// swagger:meta
package docs
