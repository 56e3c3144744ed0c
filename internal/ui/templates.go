package ui

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006 15:04")
	},
	"formatTimePtr": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006 15:04")
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006")
	},
	"hours": func(h float64) string {
		return fmt.Sprintf("%gh", h)
	},
}

// renderTemplate renders a page template inside the shared layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	if _, err = tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content. In a production app, these would be
// loaded from files or generated by templ.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - SMEC Certificados</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="stylesheet" href="/static/css/app.css">
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">
                        SMEC Certificados
                    </a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        {{if .Session}}{{if .Session.IsAdmin}}
                        <a href="/admin/dashboard" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Painel</a>
                        <a href="/admin/events" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Eventos</a>
                        <a href="/admin/participants" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Participantes</a>
                        <a href="/admin/attendance" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Frequência</a>
                        {{else}}
                        <a href="/participant/dashboard" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Painel</a>
                        <a href="/participant/events" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Eventos</a>
                        <a href="/participant/check-in" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Check-in</a>
                        <a href="/participant/certificates" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Certificados</a>
                        {{end}}{{end}}
                        <a href="/validate-certificate" class="border-transparent text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Validar Certificado</a>
                    </div>
                </div>
                <div class="flex items-center">
                    {{if .Session}}
                    <span class="text-sm text-gray-500 mr-4">{{.Session.Username}}</span>
                    <form action="/logout" method="POST" class="inline">
                        <button type="submit" class="text-sm text-gray-500 hover:text-gray-700">Sair</button>
                    </form>
                    {{else}}
                    <a href="/login" class="text-sm text-gray-500 hover:text-gray-700 mr-4">Entrar</a>
                    <a href="/register" class="text-sm text-indigo-600 hover:text-indigo-500">Registrar</a>
                    {{end}}
                </div>
            </div>
        </div>
    </nav>

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4 mb-6">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        {{template "content" .}}
    </main>
</body>
</html>`,

	"home": `{{define "content"}}
<div class="px-4 py-16 text-center">
    <h1 class="text-4xl font-bold text-gray-900 mb-4">Gerenciador de Eventos e Certificados</h1>
    <p class="text-lg text-gray-600 mb-8">
        Registre presença em eventos e emita certificados de participação.
    </p>
    <div class="flex justify-center space-x-4">
        {{if .Session}}
        <a href="{{if .Session.IsAdmin}}/admin/dashboard{{else}}/participant/dashboard{{end}}"
           class="inline-flex items-center px-6 py-3 border border-transparent text-base font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Ir para o painel
        </a>
        {{else}}
        <a href="/login" class="inline-flex items-center px-6 py-3 border border-transparent text-base font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Entrar
        </a>
        <a href="/validate-certificate" class="inline-flex items-center px-6 py-3 border border-gray-300 text-base font-medium rounded-md shadow-sm text-gray-700 bg-white hover:bg-gray-50">
            Validar um certificado
        </a>
        {{end}}
    </div>
</div>
{{end}}`,

	"login": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4">
    <div class="max-w-md w-full space-y-6">
        <h2 class="text-center text-3xl font-extrabold text-gray-900">Entrar</h2>
        {{if .Registered}}
        <div class="rounded-md bg-green-50 p-4">
            <div class="text-sm text-green-700">Conta criada com sucesso. Faça login para continuar.</div>
        </div>
        {{end}}
        {{range .Fields}}
        <div class="rounded-md bg-red-50 p-2 px-4">
            <div class="text-sm text-red-700">{{if .Field}}{{.Field}}: {{end}}{{.Message}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-6" action="/login" method="POST">
            <input type="hidden" name="next" value="{{.Next}}">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="username" class="sr-only">Usuário</label>
                    <input id="username" name="username" type="text" required value="{{.Username}}"
                           class="appearance-none relative block w-full px-3 py-2 border border-gray-300 text-gray-900 rounded-t-md focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm"
                           placeholder="Usuário">
                </div>
                <div>
                    <label for="password" class="sr-only">Senha</label>
                    <input id="password" name="password" type="password" required
                           class="appearance-none relative block w-full px-3 py-2 border border-gray-300 text-gray-900 rounded-b-md focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm"
                           placeholder="Senha">
                </div>
            </div>
            <button type="submit"
                    class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                Entrar
            </button>
        </form>
        <p class="text-center text-sm text-gray-600">
            Não tem conta? <a href="/register" class="text-indigo-600 hover:text-indigo-500">Registre-se</a>
        </p>
    </div>
</div>
{{end}}`,

	"register": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4">
    <div class="max-w-md w-full space-y-6">
        <h2 class="text-center text-3xl font-extrabold text-gray-900">Criar conta</h2>
        {{range .Fields}}
        <div class="rounded-md bg-red-50 p-2 px-4">
            <div class="text-sm text-red-700">{{if .Field}}{{.Field}}: {{end}}{{.Message}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-4" action="/register" method="POST">
            <div>
                <label for="username" class="block text-sm font-medium text-gray-700">Usuário</label>
                <input id="username" name="username" type="text" required value="{{.Username}}"
                       class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm">
            </div>
            <div>
                <label for="email" class="block text-sm font-medium text-gray-700">Email</label>
                <input id="email" name="email" type="email" required value="{{.Email}}"
                       class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm">
            </div>
            <div>
                <label for="password" class="block text-sm font-medium text-gray-700">Senha</label>
                <input id="password" name="password" type="password" required minlength="8"
                       class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm">
            </div>
            <button type="submit"
                    class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                Registrar
            </button>
        </form>
        <p class="text-center text-sm text-gray-600">
            Já tem conta? <a href="/login" class="text-indigo-600 hover:text-indigo-500">Entrar</a>
        </p>
    </div>
</div>
{{end}}`,

	"admin_dashboard": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-8">
        <h1 class="text-2xl font-semibold text-gray-900">Painel Admin</h1>
        <p class="mt-1 text-sm text-gray-500">Bem-vindo, {{.Session.Username}}</p>
    </div>
    <div class="grid grid-cols-1 gap-5 sm:grid-cols-2 mb-8">
        <a href="/admin/events" class="bg-white overflow-hidden shadow rounded-lg p-5 hover:bg-gray-50">
            <dt class="text-sm font-medium text-gray-500 truncate">Eventos</dt>
            <dd class="text-2xl font-semibold text-gray-900">{{if .EventCount}}{{.EventCount}}{{else}}0{{end}}</dd>
        </a>
        <a href="/admin/participants" class="bg-white overflow-hidden shadow rounded-lg p-5 hover:bg-gray-50">
            <dt class="text-sm font-medium text-gray-500 truncate">Participantes</dt>
            <dd class="text-2xl font-semibold text-gray-900">{{if .ParticipantCount}}{{.ParticipantCount}}{{else}}0{{end}}</dd>
        </a>
    </div>
    <div class="flex space-x-4">
        <a href="/admin/events" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Gerenciar eventos
        </a>
        <a href="/admin/participants" class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md shadow-sm text-gray-700 bg-white hover:bg-gray-50">
            Gerenciar participantes
        </a>
    </div>
</div>
{{end}}`,

	"admin_events": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Gerenciar Eventos</h1>
    {{if .Flash}}
    <div class="rounded-md bg-yellow-50 p-4 mb-6">
        <div class="text-sm text-yellow-700">{{.Flash}}</div>
    </div>
    {{end}}

    <div class="bg-white shadow sm:rounded-lg mb-8">
        <div class="px-4 py-5 sm:p-6">
            <h3 class="text-lg font-medium text-gray-900 mb-4">Novo evento</h3>
            <form action="/admin/events" method="POST" class="grid grid-cols-1 sm:grid-cols-2 gap-4">
                <div class="sm:col-span-2">
                    <label class="block text-sm font-medium text-gray-700">Nome</label>
                    <input type="text" name="name" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                </div>
                <div class="sm:col-span-2">
                    <label class="block text-sm font-medium text-gray-700">Descrição</label>
                    <textarea name="description" rows="2" class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm"></textarea>
                </div>
                <div>
                    <label class="block text-sm font-medium text-gray-700">Local</label>
                    <input type="text" name="location" class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                </div>
                <div>
                    <label class="block text-sm font-medium text-gray-700">Carga horária (horas)</label>
                    <input type="number" name="workload_hours" step="0.5" min="0" class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                </div>
                <div>
                    <label class="block text-sm font-medium text-gray-700">Início</label>
                    <input type="datetime-local" name="start_date" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                </div>
                <div>
                    <label class="block text-sm font-medium text-gray-700">Fim</label>
                    <input type="datetime-local" name="end_date" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                </div>
                <div class="sm:col-span-2 text-right">
                    <button type="submit" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
                        Criar evento
                    </button>
                </div>
            </form>
        </div>
    </div>

    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Events}}
            <li class="px-4 py-4 sm:px-6">
                <div class="flex items-center justify-between">
                    <div>
                        <p class="text-sm font-medium text-indigo-600">{{.Name}}</p>
                        <p class="mt-1 text-sm text-gray-500">{{.Description}}</p>
                        <p class="mt-1 text-xs text-gray-500">
                            {{formatDate .StartDate}} a {{formatDate .EndDate}}
                            {{if .Location}} &middot; {{.Location}}{{end}}
                            {{if .Workload}} &middot; {{hours .Workload}}{{end}}
                        </p>
                    </div>
                    <form action="/admin/events/{{.ID}}/delete" method="POST"
                          onsubmit="return confirm('Excluir este evento?')">
                        <button type="submit" class="inline-flex items-center px-3 py-1 border border-red-300 text-xs font-medium rounded text-red-700 bg-white hover:bg-red-50">
                            Excluir
                        </button>
                    </form>
                </div>
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">Nenhum evento cadastrado.</li>
            {{end}}
        </ul>
    </div>
</div>
{{end}}`,

	"admin_participants": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Gerenciar Participantes</h1>

    {{with .Import}}
    <div class="rounded-md {{if eq .Kind "success"}}bg-green-50{{else}}bg-red-50{{end}} p-4 mb-6">
        <div class="text-sm {{if eq .Kind "success"}}text-green-700{{else}}text-red-700{{end}}">{{.Message}}</div>
        {{with .Result}}
        <p class="mt-1 text-sm text-gray-600">{{.SuccessCount}} de {{len .Results}} linhas importadas.</p>
        <ul class="mt-2 space-y-1">
            {{range .Results}}
            <li class="text-xs {{if eq .ImportStatus "success"}}text-green-700{{else}}text-red-700{{end}}">
                {{.RowID}}: {{.ImportStatus}}{{if .Error}} - {{.Error}}{{end}}
            </li>
            {{end}}
        </ul>
        {{end}}
    </div>
    {{end}}

    <div class="grid grid-cols-1 lg:grid-cols-2 gap-8 mb-8">
        <div class="bg-white shadow sm:rounded-lg">
            <div class="px-4 py-5 sm:p-6">
                <h3 class="text-lg font-medium text-gray-900 mb-4">Novo participante</h3>
                <form action="/admin/participants" method="POST" class="space-y-4">
                    <div>
                        <label class="block text-sm font-medium text-gray-700">Nome</label>
                        <input type="text" name="name" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                    </div>
                    <div>
                        <label class="block text-sm font-medium text-gray-700">Email</label>
                        <input type="email" name="email" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                    </div>
                    <div>
                        <label class="block text-sm font-medium text-gray-700">CPF</label>
                        <input type="text" name="cpf" class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                    </div>
                    <button type="submit" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
                        Adicionar
                    </button>
                </form>
            </div>
        </div>
        <div class="bg-white shadow sm:rounded-lg">
            <div class="px-4 py-5 sm:p-6">
                <h3 class="text-lg font-medium text-gray-900 mb-4">Importar planilha</h3>
                <p class="text-sm text-gray-500 mb-4">
                    Envie um arquivo .xlsx ou .csv com as colunas Nome, Email e CPF.
                </p>
                <form action="/admin/participants/import" method="POST" enctype="multipart/form-data" class="space-y-4">
                    <input type="file" name="file" required accept=".xlsx,.xlsm,.csv"
                           class="block w-full text-sm text-gray-500 file:mr-4 file:py-2 file:px-4 file:rounded-md file:border-0 file:text-sm file:font-medium file:bg-indigo-50 file:text-indigo-700 hover:file:bg-indigo-100">
                    <button type="submit" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
                        Importar
                    </button>
                </form>
            </div>
        </div>
    </div>

    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Nome</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Email</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">CPF</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="bg-white divide-y divide-gray-200">
                {{range .Participants}}
                <tr>
                    <td class="px-6 py-4 whitespace-nowrap text-sm font-medium text-gray-900">{{.Name}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{.Email}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{if .CPF}}{{.CPF}}{{else}}-{{end}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-right">
                        <form action="/admin/participants/{{.ID}}/delete" method="POST" class="inline"
                              onsubmit="return confirm('Excluir este participante?')">
                            <button type="submit" class="text-sm text-red-600 hover:text-red-500">Excluir</button>
                        </form>
                    </td>
                </tr>
                {{else}}
                <tr>
                    <td colspan="4" class="px-6 py-8 text-center text-sm text-gray-500">Nenhum participante cadastrado.</td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"admin_attendance": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Gerenciar Frequência</h1>
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Participante</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Evento</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Check-in</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Check-out</th>
                </tr>
            </thead>
            <tbody class="bg-white divide-y divide-gray-200">
                {{range .Attendances}}
                <tr>
                    <td class="px-6 py-4 whitespace-nowrap text-sm font-medium text-gray-900">{{.Participant}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{.EventName}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{formatTimePtr .CheckInTime}}</td>
                    <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{formatTimePtr .CheckOutTime}}</td>
                </tr>
                {{else}}
                <tr>
                    <td colspan="4" class="px-6 py-8 text-center text-sm text-gray-500">Nenhum registro de frequência.</td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"participant_dashboard": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-8">
        <h1 class="text-2xl font-semibold text-gray-900">Meu Painel</h1>
        <p class="mt-1 text-sm text-gray-500">Bem-vindo, {{.Session.Username}}</p>
    </div>
    <div class="grid grid-cols-1 gap-5 sm:grid-cols-2 mb-8">
        <div class="bg-white overflow-hidden shadow rounded-lg p-5">
            <dt class="text-sm font-medium text-gray-500 truncate">Presenças em aberto</dt>
            <dd class="text-2xl font-semibold text-gray-900">{{if .OpenCount}}{{.OpenCount}}{{else}}0{{end}}</dd>
        </div>
        <a href="/participant/certificates" class="bg-white overflow-hidden shadow rounded-lg p-5 hover:bg-gray-50">
            <dt class="text-sm font-medium text-gray-500 truncate">Certificados</dt>
            <dd class="text-2xl font-semibold text-gray-900">{{if .CertificateCount}}{{.CertificateCount}}{{else}}0{{end}}</dd>
        </a>
    </div>

    <h3 class="text-lg font-medium text-gray-900 mb-4">Minhas presenças</h3>
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Attendances}}
            <li class="px-4 py-4 sm:px-6">
                <div class="flex items-center justify-between">
                    <div>
                        <p class="text-sm font-medium text-gray-900">{{.EventName}}</p>
                        <p class="mt-1 text-xs text-gray-500">
                            Check-in: {{formatTimePtr .CheckInTime}}
                            {{if .CheckedOut}} &middot; Check-out: {{formatTimePtr .CheckOutTime}}{{end}}
                        </p>
                    </div>
                    {{if not .CheckedOut}}
                    <form action="/participant/check-out/{{.ID}}" method="POST">
                        <button type="submit" class="inline-flex items-center px-3 py-1 border border-indigo-300 text-xs font-medium rounded text-indigo-700 bg-white hover:bg-indigo-50">
                            Fazer check-out
                        </button>
                    </form>
                    {{end}}
                </div>
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">
                Nenhuma presença registrada. <a href="/participant/check-in" class="text-indigo-600 hover:text-indigo-500">Fazer check-in</a>
            </li>
            {{end}}
        </ul>
    </div>
</div>
{{end}}`,

	"participant_events": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Eventos</h1>
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Events}}
            <li class="px-4 py-4 sm:px-6">
                <p class="text-sm font-medium text-indigo-600">{{.Name}}</p>
                <p class="mt-1 text-sm text-gray-500">{{.Description}}</p>
                <p class="mt-1 text-xs text-gray-500">
                    {{formatDate .StartDate}} a {{formatDate .EndDate}}
                    {{if .Location}} &middot; {{.Location}}{{end}}
                    {{if .Workload}} &middot; {{hours .Workload}}{{end}}
                </p>
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">Nenhum evento disponível.</li>
            {{end}}
        </ul>
    </div>
</div>
{{end}}`,

	"checkin": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-lg mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Check-in</h1>
    {{if .Flash}}
    <div class="rounded-md {{if eq .FlashKind "success"}}bg-green-50{{else}}bg-red-50{{end}} p-4 mb-6">
        <div class="text-sm {{if eq .FlashKind "success"}}text-green-700{{else}}text-red-700{{end}}">{{.Flash}}</div>
    </div>
    {{end}}
    <div class="bg-white shadow sm:rounded-lg">
        <div class="px-4 py-5 sm:p-6">
            <form action="/participant/check-in" method="POST" class="space-y-4" id="checkin-form">
                <div>
                    <label class="block text-sm font-medium text-gray-700">Evento</label>
                    <select name="event_id" required class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm">
                        <option value="">Selecione...</option>
                        {{range .Events}}
                        <option value="{{.ID}}">{{.Name}}</option>
                        {{end}}
                    </select>
                </div>
                <div>
                    <label class="block text-sm font-medium text-gray-700">Código QR</label>
                    <input type="text" name="qr_code_data" value="{{.Code}}"
                           class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm"
                           placeholder="Cole ou escaneie o código do evento">
                </div>
                <input type="hidden" name="latitude" id="latitude">
                <input type="hidden" name="longitude" id="longitude">
                <button type="submit" class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                    Confirmar presença
                </button>
            </form>
        </div>
    </div>
    <script>
    if (navigator.geolocation) {
        navigator.geolocation.getCurrentPosition(function(pos) {
            document.getElementById('latitude').value = pos.coords.latitude;
            document.getElementById('longitude').value = pos.coords.longitude;
        });
    }
    </script>
</div>
{{end}}`,

	"certificates": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Meus Certificados</h1>
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Certificates}}
            <li class="px-4 py-4 sm:px-6">
                <div class="flex items-center justify-between">
                    <div>
                        <p class="text-sm font-medium text-gray-900">{{.EventName}}</p>
                        <p class="mt-1 text-xs text-gray-500 font-mono">{{.UniqueCode}}</p>
                        <p class="mt-1 text-xs text-gray-500">
                            {{if .TotalHours}}{{hours .TotalHours}}{{end}}
                            {{if .IssueDate}} &middot; Emitido em {{.IssueDate}}{{end}}
                        </p>
                    </div>
                    <a href="/participant/certificates/{{.ID}}/download"
                       class="inline-flex items-center px-3 py-1 border border-indigo-300 text-xs font-medium rounded text-indigo-700 bg-white hover:bg-indigo-50">
                        Baixar PDF
                    </a>
                </div>
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">Nenhum certificado emitido ainda.</li>
            {{end}}
        </ul>
    </div>
</div>
{{end}}`,

	"validate": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-lg mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Validar Certificado</h1>
    <div class="bg-white shadow sm:rounded-lg mb-6">
        <div class="px-4 py-5 sm:p-6">
            <form action="/validate-certificate" method="POST" class="space-y-4">
                <div>
                    <label class="block text-sm font-medium text-gray-700">Código do certificado</label>
                    <input type="text" name="code" value="{{.Code}}" required
                           class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm sm:text-sm font-mono"
                           placeholder="Ex: a1b2c3d4-...">
                </div>
                <button type="submit" class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                    Validar
                </button>
            </form>
        </div>
    </div>

    {{with .Result}}
    {{if .IsValid}}
    <div class="bg-white shadow sm:rounded-lg border-l-4 border-green-500">
        <div class="px-4 py-5 sm:p-6">
            <h3 class="text-lg font-medium text-green-700 mb-2">Certificado válido</h3>
            <dl class="space-y-1 text-sm">
                <div><dt class="inline font-medium text-gray-500">Participante:</dt> <dd class="inline text-gray-900">{{.ParticipantName}}</dd></div>
                {{if .TotalHours}}<div><dt class="inline font-medium text-gray-500">Carga horária:</dt> <dd class="inline text-gray-900">{{hours .TotalHours}}</dd></div>{{end}}
                {{if .IssueDate}}<div><dt class="inline font-medium text-gray-500">Emitido em:</dt> <dd class="inline text-gray-900">{{.IssueDate}}</dd></div>{{end}}
            </dl>
            {{if .AttendedEvents}}
            <p class="mt-3 text-sm font-medium text-gray-500">Eventos:</p>
            <ul class="mt-1 list-disc list-inside text-sm text-gray-900">
                {{range .AttendedEvents}}<li>{{.}}</li>{{end}}
            </ul>
            {{end}}
        </div>
    </div>
    {{else}}
    <div class="bg-white shadow sm:rounded-lg border-l-4 border-red-500">
        <div class="px-4 py-5 sm:p-6">
            <h3 class="text-lg font-medium text-red-700 mb-2">Certificado inválido</h3>
            <p class="text-sm text-gray-600">{{if .Detail}}{{.Detail}}{{else}}Código não encontrado.{{end}}</p>
        </div>
    </div>
    {{end}}
    {{end}}
</div>
{{end}}`,

	"notfound": `{{define "content"}}
<div class="py-24 text-center">
    <h1 class="text-4xl font-bold text-gray-900 mb-4">404</h1>
    <p class="text-gray-600 mb-8">Página não encontrada.</p>
    <a href="/" class="text-indigo-600 hover:text-indigo-500">Voltar ao início</a>
</div>
{{end}}`,
}
