package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, InvalidCredentialsKey, "Usuário ou senha inválidos")
	message.SetString(lang, ServerUnreachableKey, "Erro ao conectar com o servidor. Verifique se a API está rodando.")
	message.SetString(lang, GenerateFailedKey, "Erro ao gerar QR Code")
	message.SetString(lang, MissingHeadersKey, "O servidor não retornou o código do convite")
	message.SetString(lang, InvalidQRCodeKey, "QR Code inválido ou não encontrado.")
	message.SetString(lang, SelectImageKey, "Por favor, selecione uma imagem do QR Code.")
	message.SetString(lang, NotAnImageKey, "Por favor, selecione uma imagem válida.")
	message.SetString(lang, LoadInvitesFailedKey, "Erro ao carregar convites. Verifique se a API está rodando.")
	message.SetString(lang, LoadStatsFailedKey, "Erro ao carregar estatísticas")
	message.SetString(lang, NoInvitesKey, "Nenhum convite criado ainda.")
	message.SetString(lang, NoFilterMatchKey, "Nenhum convite encontrado com os filtros aplicados.")
	message.SetString(lang, ValidatedKey, "Validado")
	message.SetString(lang, PendingKey, "Pendente")
	message.SetString(lang, NotAvailableKey, "N/A")
	message.SetString(lang, ErrorShortKey, "Erro")
	message.SetString(lang, GreetingKey, "Olá, %s")
	message.SetString(lang, BusyKey, "Já existe uma operação em andamento")
	message.SetString(lang, InviteCodeShareKey, "Código do convite: %s")
	message.SetString(lang, ValidationSuccessKey, "QR Code lido e validado com sucesso")
	message.SetString(lang, UnknownTimeKey, "desconhecido")
	message.SetString(lang, LoggedOutKey, "Você saiu da sua conta")
	message.SetString(lang, InviteNotFoundKey, "Convite não encontrado")
	message.SetString(lang, SessionUnavailableKey, "Não foi possível iniciar a sessão")
}
