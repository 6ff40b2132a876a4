package controller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/dto"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	userdomain "github.com/joaovitorvlb/api-autopeck/internal/domain/user"
	"github.com/joaovitorvlb/api-autopeck/pkg/jwt"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
	"github.com/joaovitorvlb/api-autopeck/pkg/mailer"
	"github.com/joaovitorvlb/api-autopeck/pkg/recovery"
)

// tokenExpiration é a validade do token de acesso
const tokenExpiration = 24 * time.Hour

// recoveryTokenTTL é a validade do token de recuperação de senha
const recoveryTokenTTL = 30 * time.Minute

// AuthController gerencia autenticação, usuários e recuperação de senha.
// O store de tokens de recuperação é injetado para que expiração e uso único
// sejam verificáveis em teste.
type AuthController struct {
	userRepo userdomain.Repository
	tokens   recovery.Store
	mailer   mailer.Mailer
	logger   logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepo userdomain.Repository, tokens recovery.Store, m mailer.Mailer, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   m,
		logger:   logger,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Login
// @Description Autentica o usuário por email e senha e retorna o token de acesso
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
			return
		}
		c.logger.Error("erro ao buscar usuário no login", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao autenticar", err.Error()))
		return
	}

	if !u.CheckPassword(req.Password) || !u.IsActive() {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
		return
	}

	token, err := jwt.GenerateToken(u.ID, u.Email, string(u.Role), tokenExpiration)
	if err != nil {
		c.logger.Error("erro ao gerar token JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", err.Error()))
		return
	}

	if err := c.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		c.logger.Error("erro ao registrar último login", "user_id", u.ID, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(tokenExpiration),
	})
}

// Refresh renova um token JWT válido
// @Summary Renovar token
// @Description Gera um novo token de acesso a partir de um token ainda válido
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.RefreshTokenRequest true "Token atual"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := jwt.RefreshToken(req.Token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "token inválido ou expirado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("token renovado", gin.H{
		"access_token": token,
		"expires_at":   time.Now().Add(tokenExpiration),
	}))
}

// Me retorna os dados do usuário autenticado
// @Summary Usuário atual
// @Description Retorna os dados do usuário dono do token
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "não autenticado", ""))
		return
	}

	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "usuário não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// Logout encerra a sessão do cliente. Os tokens são stateless: o servidor não
// mantém sessão, cabe ao cliente descartar o token.
// @Summary Logout
// @Description Encerra a sessão; o cliente deve descartar o token de acesso
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("logout realizado com sucesso", nil))
}

// CreateUser cria um novo usuário operador (requer autenticação)
// @Summary Criar usuário
// @Description Cria um novo usuário operador do sistema
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.CreateUserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/users [post]
func (c *AuthController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := userdomain.NewUser(req.Name, req.Email, req.Password, userdomain.RoleStaff)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar usuário", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao criar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Setup cria o primeiro administrador do sistema. Só funciona enquanto não
// existe nenhum administrador cadastrado.
// @Summary Configuração inicial
// @Description Cria o primeiro usuário administrador, disponível apenas enquanto não houver administradores
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Dados do administrador"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/setup [post]
func (c *AuthController) Setup(ctx *gin.Context) {
	admins, err := c.userRepo.CountAdmins(ctx)
	if err != nil {
		c.logger.Error("erro ao contar administradores", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar administradores", err.Error()))
		return
	}
	if admins > 0 {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "sistema já configurado", ""))
		return
	}

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := userdomain.NewUser(req.Name, req.Email, req.Password, userdomain.RoleAdmin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar administrador", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		c.logger.Error("erro ao criar administrador", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar administrador", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// ForgotPassword inicia a recuperação de senha: gera um token de uso único e
// envia o link por email. A resposta é a mesma existindo ou não o email, para
// não revelar quais contas estão cadastradas.
// @Summary Esqueci minha senha
// @Description Envia por email um link de redefinição de senha válido por 30 minutos
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email cadastrado"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	// Aproveita a requisição para limpar tokens expirados
	if removed := c.tokens.Sweep(ctx); removed > 0 {
		c.logger.Debug("tokens de recuperação expirados removidos", "count", removed)
	}

	genericResponse := dto.NewSuccessResponse("se o email estiver cadastrado, o link de recuperação foi enviado", nil)

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusOK, genericResponse)
			return
		}
		c.logger.Error("erro ao buscar usuário na recuperação de senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao processar recuperação", err.Error()))
		return
	}

	token, err := recovery.NewToken(u.Email, recoveryTokenTTL)
	if err != nil {
		c.logger.Error("erro ao gerar token de recuperação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token de recuperação", err.Error()))
		return
	}

	if err := c.tokens.Save(ctx, token); err != nil {
		c.logger.Error("erro ao salvar token de recuperação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar token de recuperação", err.Error()))
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", recoveryBaseURL(), token.Value)
	if err := c.mailer.SendRecoveryEmail(u.Email, link); err != nil {
		c.logger.Error("erro ao enviar email de recuperação", "email", u.Email, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao enviar email de recuperação", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, genericResponse)
}

// ValidateRecoveryToken verifica se um token de recuperação ainda é utilizável
// @Summary Validar token de recuperação
// @Description Verifica se o token de recuperação é válido e quanto tempo resta
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ValidateRecoveryTokenRequest true "Token de recuperação"
// @Success 200 {object} dto.ValidateRecoveryTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/validate-recovery-token [post]
func (c *AuthController) ValidateRecoveryToken(ctx *gin.Context) {
	var req dto.ValidateRecoveryTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := c.tokens.Find(ctx, req.Token)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.ValidateRecoveryTokenResponse{Valid: false})
		return
	}

	now := time.Now()
	if err := token.Validate(now); err != nil {
		ctx.JSON(http.StatusOK, dto.ValidateRecoveryTokenResponse{Valid: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.ValidateRecoveryTokenResponse{
		Valid:            true,
		Email:            token.Subject,
		RemainingMinutes: int(token.Remaining(now).Minutes()),
	})
}

// ResetPassword redefine a senha do usuário a partir de um token de
// recuperação válido. O token é de uso único: depois da redefinição é marcado
// como utilizado.
// @Summary Redefinir senha
// @Description Redefine a senha do usuário usando o token enviado por email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token e nova senha"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := c.tokens.Find(ctx, req.Token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "token de recuperação inválido", err.Error()))
		return
	}

	if err := token.Validate(time.Now()); err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "token de recuperação inválido", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, token.Subject)
	if err != nil {
		c.logger.Error("erro ao buscar usuário na redefinição de senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao redefinir senha", err.Error()))
		return
	}

	if err := u.SetPassword(req.NewPassword); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "senha inválida", err.Error()))
		return
	}

	if err := c.userRepo.UpdatePassword(ctx, u.ID, u.Password); err != nil {
		c.logger.Error("erro ao atualizar senha", "user_id", u.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar senha", err.Error()))
		return
	}

	if err := c.tokens.MarkUsed(ctx, token.Value); err != nil {
		c.logger.Error("erro ao marcar token como utilizado", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("senha redefinida com sucesso", nil))
}

// recoveryBaseURL retorna a base do link de recuperação enviado por email
func recoveryBaseURL() string {
	if base := os.Getenv("RECOVERY_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:8080"
}
