package components

const iconCloud = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" aria-hidden="true"><path d="M20 46h26a10 10 0 0 0 1-19.9A14 14 0 0 0 20.3 24 11 11 0 0 0 20 46z" fill="none" stroke="currentColor" stroke-width="3" stroke-linejoin="round"/></svg>`

const iconMetrics = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" aria-hidden="true"><path d="M10 52h44M16 44V30M28 44V18M40 44V26M52 44V12" fill="none" stroke="currentColor" stroke-width="4" stroke-linecap="round"/></svg>`

const iconCapture = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" aria-hidden="true"><circle cx="32" cy="32" r="20" fill="none" stroke="currentColor" stroke-width="3"/><circle cx="32" cy="32" r="7" fill="currentColor"/><path d="M32 4v8M32 52v8M4 32h8M52 32h8" stroke="currentColor" stroke-width="3"/></svg>`

const iconBee = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" aria-hidden="true"><ellipse cx="32" cy="36" rx="12" ry="16" fill="none" stroke="currentColor" stroke-width="3"/><path d="M21 32h22M21 40h22M26 20c-6-10-16-8-16 0s10 8 16 2M38 20c6-10 16-8 16 0s-10 8-16 2" fill="none" stroke="currentColor" stroke-width="3"/></svg>`
