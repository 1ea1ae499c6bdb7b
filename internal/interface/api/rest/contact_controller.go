package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/interface/api/rest/dto/contact"
	"contacts-api/internal/interface/api/rest/middleware"
	"contacts-api/internal/interface/api/rest/validator"
)

type ContactController struct {
	contactService ports.ContactService
	logger         *zap.Logger
}

func NewContactController(
	r *gin.Engine,
	contactService ports.ContactService,
	logger *zap.Logger,
	auth gin.HandlerFunc,
) *ContactController {
	cc := &ContactController{
		contactService: contactService,
		logger:         logger,
	}

	r.GET(RouteContacts, auth, cc.GetContactsHandler)
	r.POST(RouteContacts, auth, cc.CreateContactHandler)
	r.GET(RouteUpcomingBirthdays, auth, cc.UpcomingBirthdaysHandler)
	r.GET(RouteContact, auth, cc.GetContactHandler)
	r.PUT(RouteContact, auth, cc.UpdateContactHandler)
	r.DELETE(RouteContact, auth, cc.DeleteContactHandler)

	return cc
}

// GetContactsHandler lists contacts. first_name, last_name and email narrow the list.
func (cc *ContactController) GetContactsHandler(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, errs := validator.ParsePage(c.Query("skip"), c.Query("limit"))
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": errs,
		})
		return
	}

	cs, err := cc.contactService.FindContacts(c.Request.Context(), ownerID, searchFilter(c), page)
	if err != nil {
		writeError(c, cc.logger, "FindContacts()", err)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContacts(cs))
}

func (cc *ContactController) CreateContactHandler(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, map[string]string{"body": err.Error()})
		return
	}

	d, errs := contact.ToDraft(req)
	if errs != nil {
		badRequest(c, mergeDomainErrors(errs, d.Validate()))
		return
	}

	out, err := cc.contactService.CreateContact(c.Request.Context(), ownerID, d)
	if err != nil {
		writeError(c, cc.logger, "CreateContact()", err)
		return
	}

	c.JSON(http.StatusCreated, contact.ToResponseContact(*out))
}

func (cc *ContactController) GetContactHandler(c *gin.Context) {
	ownerID, id, ok := cc.ownerAndID(c)
	if !ok {
		return
	}

	out, err := cc.contactService.FindContact(c.Request.Context(), ownerID, id)
	if err != nil {
		writeError(c, cc.logger, "FindContact()", err)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContact(*out))
}

func (cc *ContactController) UpdateContactHandler(c *gin.Context) {
	ownerID, id, ok := cc.ownerAndID(c)
	if !ok {
		return
	}

	var req contact.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, map[string]string{"body": err.Error()})
		return
	}

	p, errs := contact.ToPatch(req)
	if errs != nil {
		badRequest(c, mergeDomainErrors(errs, p.Validate()))
		return
	}

	out, err := cc.contactService.UpdateContact(c.Request.Context(), ownerID, id, p)
	if err != nil {
		writeError(c, cc.logger, "UpdateContact()", err)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContact(*out))
}

func (cc *ContactController) DeleteContactHandler(c *gin.Context) {
	ownerID, id, ok := cc.ownerAndID(c)
	if !ok {
		return
	}

	if err := cc.contactService.DeleteContact(c.Request.Context(), ownerID, id); err != nil {
		writeError(c, cc.logger, "DeleteContact()", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (cc *ContactController) UpcomingBirthdaysHandler(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days, err := validator.ParseDays(c.Query("days"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	bs, err := cc.contactService.UpcomingBirthdays(c.Request.Context(), ownerID, days)
	if err != nil {
		writeError(c, cc.logger, "UpcomingBirthdays()", err)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseUpcoming(bs))
}

func (cc *ContactController) ownerAndID(c *gin.Context) (user.ID, domain.ID, bool) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, 0, false
	}

	id, err := validator.ParseContactID(c.Param("contact_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	return ownerID, id, true
}

// searchFilter keeps only the criteria present in the query string.
func searchFilter(c *gin.Context) domain.SearchFilter {
	var f domain.SearchFilter
	if v, ok := c.GetQuery("first_name"); ok {
		f.FirstName = &v
	}
	if v, ok := c.GetQuery("last_name"); ok {
		f.LastName = &v
	}
	if v, ok := c.GetQuery("email"); ok {
		f.Email = &v
	}

	return f
}

// mergeDomainErrors adds field rule violations to the transport errors
// without overwriting them.
func mergeDomainErrors(errs map[string]string, err error) map[string]string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return errs
	}
	for k, v := range verr.Fields {
		if _, ok := errs[k]; !ok {
			errs[k] = v
		}
	}

	return errs
}
