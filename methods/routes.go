/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import "github.com/gin-gonic/gin"

// Register mounts the registry resources on api, normally the /api group.
func (h *Handler) Register(api *gin.RouterGroup) {
	// lookups
	api.GET("/owners", h.ListOwners)
	api.GET("/companies", h.ListCompanies)
	api.GET("/access-types", h.ListAccessTypes())
	api.GET("/server-types", h.ListServerTypes())
	api.GET("/all-roles", h.ListOwnerRoles())
	api.GET("/release-types", h.ListReleaseTypes())
	api.GET("/hosting-server-list", h.ListHostingServers)

	// applications
	api.GET("/applications", h.ListApplications)
	api.POST("/applications", h.CreateApplication)
	api.GET("/applications/:id", h.GetApplication)
	api.PUT("/applications/:id", h.UpdateApplication)
	api.DELETE("/applications/:id", h.DeleteApplication)
	api.GET("/app-name/:id", h.GetApplicationName)

	// audit findings
	api.GET("/audit-logs/by-app/:id", h.ListAuditFindings)
	api.POST("/audit-findings", h.CreateAuditFinding)
	api.POST("/audit-report-with-findings", h.CreateAuditReport)
	api.GET("/audit-report-id/:id", h.GetAuditReportID)
	api.PUT("/audit-logs/:id", h.UpdateAuditFinding)
	api.DELETE("/audit-logs/:id", h.DeleteAuditFinding)

	// domains
	api.GET("/domain-report", h.ListDomains)
	api.GET("/domain/:id", h.ListApplicationDomains)
	api.POST("/domain", h.CreateDomain)
	api.PUT("/domain/:id", h.UpdateDomain)
	api.DELETE("/domain/:id", h.DeleteDomain)

	// hosting servers
	api.GET("/servers", h.ListServers)
	api.POST("/servers", h.CreateServer)
	api.PUT("/servers/:id", h.UpdateServer)
	api.DELETE("/servers/:id", h.DeleteServer)

	// servers of an application
	api.GET("/hosting-server/app/:id", h.ListAppServers)
	api.POST("/app-server", h.CreateAppServer)
	api.PUT("/app-server/:id", h.UpdateAppServer)
	api.DELETE("/app-server/:id", h.DeleteAppServer)

	// owners of an application
	api.GET("/app-owners/:id", h.ListAppOwners)
	api.POST("/app-owners", h.CreateAppOwner)
	api.PUT("/app-owners/:id", h.UpdateAppOwner)
	api.DELETE("/app-owners/:id", h.DeleteAppOwner)

	// companies
	api.GET("/all-companies", h.ListCompanies)
	api.POST("/companies", h.CreateCompany)
	api.PUT("/companies/:id", h.UpdateCompany)
	api.DELETE("/companies/:id", h.DeleteCompany)

	// certificates
	api.GET("/ssl-certificates/:id", h.ListCertificates)
	api.POST("/ssl-certificates", h.CreateCertificate)
	api.PUT("/ssl-certificates/:id", h.UpdateCertificate)
	api.DELETE("/ssl-certificates/:id", h.DeleteCertificate)
	api.GET("/ssl-certificates-expiring", h.ListExpiringCertificates)

	// versions
	api.GET("/app-versions/:id", h.ListVersions)
	api.POST("/app-versions", h.CreateVersion)
	api.PUT("/app-versions/:id", h.UpdateVersion)
	api.DELETE("/app-versions/:id", h.DeleteVersion)

	// owners master
	api.GET("/owners-master", h.ListOwners)
	api.POST("/owners-master", h.CreateOwner)
	api.PUT("/owners-master/:id", h.UpdateOwner)
	api.DELETE("/owners-master/:id", h.DeleteOwner)

	// trash bin
	api.GET("/trash/:entity", h.ListTrash)
}
