package v4

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v4/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Transaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transactions
// @Description	Creates new transactions
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v4/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model()

		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v4/transactions [get]
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			category	query	uint64	false	"Filter by category ID"
// @Param			isIncome	query	bool	false	"Only income or only spending transactions"
// @Param			account		query	string	false	"Glob match on the account label, e.g. DKB*"
// @Param			search		query	string	false	"Search for this text in description and note"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("date DESC, id DESC").
		Where(&filterModel, queryFields...)

	if !filter.Month.IsZero() {
		month := types.MonthOf(filter.Month)
		q = q.Where("date >= ? AND date < ?", month, month.AddDate(0, 1))
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)).Or(
				models.DB.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)),
			),
		)
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	// The account filter is a glob match, which SQLite cannot do for us
	if slices.Contains(setFields, "Account") {
		matching := make([]models.Transaction, 0, len(transactions))
		for _, transaction := range transactions {
			if glob.Glob(filter.Account, transaction.Account) {
				matching = append(matching, transaction)
			}
		}
		transactions = matching
	}

	// Pagination over the filtered set
	total := int64(len(transactions))

	if int(filter.Offset) < len(transactions) {
		transactions = transactions[filter.Offset:]
	} else {
		transactions = []models.Transaction{}
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	if limit >= 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v4/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	// A body without an amount leaves the zero value in the update struct,
	// but the hook checking for positive amounts sees the full struct, so
	// the stored value is carried over. An amount that is explicitly set
	// to zero stays and fails validation.
	if !slices.Contains(updateFields, any("Amount")) {
		data.Amount = transaction.Amount
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	r := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
